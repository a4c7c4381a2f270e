package engine

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lowrimor/cardtrain/models"
)

// DeckSummary is one row of the deck list.
type DeckSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// CardView is a card as exposed for editing, both sides visible.
type CardView struct {
	Index      int      `json:"index"`
	Side1      []string `json:"side1"`
	Side2      []string `json:"side2"`
	Difficulty int      `json:"difficulty"`
}

// DeckView is the full contents of the open deck.
type DeckView struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Cards       []CardView `json:"cards"`
}

// ListDecks returns every known deck ordered by name.
func (e *Engine) ListDecks() ([]DeckSummary, error) {
	var decks []models.Deck
	if err := e.db.Order("name").Find(&decks).Error; err != nil {
		return nil, err
	}
	out := make([]DeckSummary, len(decks))
	for i, d := range decks {
		out[i] = DeckSummary{Name: d.Name, DisplayName: d.DisplayName}
	}
	return out, nil
}

func (e *Engine) DisplayName() string {
	return e.deck.DisplayName
}

func (e *Engine) SetDisplayName(name string) error {
	if !e.open {
		return ErrNoDeckOpen
	}
	if err := e.db.Model(&e.deck).Update("display_name", name).Error; err != nil {
		return err
	}
	e.deck.DisplayName = name
	return nil
}

// ExposeDeck returns the open deck with all card faces visible, for editing.
func (e *Engine) ExposeDeck() (DeckView, error) {
	if !e.open {
		return DeckView{}, ErrNoDeckOpen
	}
	view := DeckView{
		Name:        e.deck.Name,
		DisplayName: e.deck.DisplayName,
		Cards:       make([]CardView, len(e.cards)),
	}
	for i, c := range e.cards {
		view.Cards[i] = CardView{
			Index:      i,
			Side1:      append([]string{}, c.Side1...),
			Side2:      append([]string{}, c.Side2...),
			Difficulty: c.Difficulty,
		}
	}
	return view, nil
}

// DeleteDeck removes the deck with the given name and all of its cards.
// The settings row for the deck is intentionally left alone.
// TODO: decide whether deck deletion should also drop the settings row.
func (e *Engine) DeleteDeck(name string) error {
	var deck models.Deck
	if err := e.db.Where("name = ?", name).First(&deck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeckNotFound
		}
		return err
	}
	if err := e.db.Where("deck_id = ?", deck.ID).Delete(&models.Card{}).Error; err != nil {
		return err
	}
	if err := e.db.Delete(&deck).Error; err != nil {
		return err
	}
	if e.open && e.deck.ID == deck.ID {
		e.open = false
		e.cards = nil
		e.resetPass()
	}
	return nil
}

// AddCard appends a card to the open deck. Sides default to a single empty
// variant and difficulty to DefaultDifficulty when unset, matching a freshly
// created card in the editor.
func (e *Engine) AddCard(side1, side2 []string, difficulty int) error {
	if !e.open {
		return ErrNoDeckOpen
	}
	if len(side1) == 0 {
		side1 = []string{""}
	}
	if len(side2) == 0 {
		side2 = []string{""}
	}
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}
	card := models.Card{
		DeckID:     e.deck.ID,
		Position:   len(e.cards),
		Side1:      side1,
		Side2:      side2,
		Difficulty: difficulty,
	}
	if err := e.db.Create(&card).Error; err != nil {
		return err
	}
	e.cards = append(e.cards, card)
	e.order = append(e.order, len(e.cards)-1)
	return nil
}

// EditCard replaces the sides and difficulty of the card at index.
func (e *Engine) EditCard(index int, side1, side2 []string, difficulty int) error {
	if !e.open {
		return ErrNoDeckOpen
	}
	if index < 0 || index >= len(e.cards) {
		return ErrCardOutOfRange
	}
	if len(side1) == 0 {
		side1 = []string{""}
	}
	if len(side2) == 0 {
		side2 = []string{""}
	}
	card := &e.cards[index]
	card.Side1 = side1
	card.Side2 = side2
	card.Difficulty = difficulty
	return e.db.Save(card).Error
}

// DeleteCard removes the card at index and re-packs the positions of the
// cards after it. The session info is reset since indices shift.
func (e *Engine) DeleteCard(index int) error {
	if !e.open {
		return ErrNoDeckOpen
	}
	if index < 0 || index >= len(e.cards) {
		return ErrCardOutOfRange
	}
	if err := e.db.Delete(&e.cards[index]).Error; err != nil {
		return err
	}
	e.cards = append(e.cards[:index], e.cards[index+1:]...)
	for i := index; i < len(e.cards); i++ {
		if err := e.db.Model(&e.cards[i]).Update("position", i).Error; err != nil {
			return err
		}
		e.cards[i].Position = i
	}
	e.resetPass()
	return nil
}
