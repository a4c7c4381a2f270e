package engine

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/lowrimor/cardtrain/models"
	"gorm.io/gorm"
)

const (
	// Difficulty bounds for a card. New cards start at DefaultDifficulty.
	MinDifficulty     = 1
	MaxDifficulty     = 10
	DefaultDifficulty = 5
)

// DrawnCard is the presentable face of a card handed to the caller on a draw.
// Question holds the accepted variants of the question side; the first entry
// is the primary one.
type DrawnCard struct {
	Index      int      `json:"index"`
	Question   []string `json:"question"`
	Difficulty int      `json:"difficulty"`
}

// CheckResult is the outcome of checking a submission against the current card.
type CheckResult struct {
	Answers       []string `json:"answers"`
	NewDifficulty int      `json:"newDifficulty"`
	Outcome       bool     `json:"outcome"`
}

// Engine drives card selection and scoring for one open deck at a time.
// It owns the draw order, the deck orientation and the session info; callers
// sequence draws and checks but never see card storage directly.
type Engine struct {
	db *gorm.DB

	deck    models.Deck
	cards   []models.Card
	open    bool
	flipped bool
	order   []int
	info    SessionInfo

	rng *rand.Rand
}

func New(db *gorm.DB) *Engine {
	return &Engine{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// OpenDeck opens the deck with the given name, creating an empty one if no
// deck by that name exists yet. Opening resets the draw order, the session
// info and the orientation.
func (e *Engine) OpenDeck(name string) error {
	var deck models.Deck
	err := e.db.Where("name = ?", name).First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		deck = models.Deck{Name: name}
		if err := e.db.Create(&deck).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var cards []models.Card
	if err := e.db.Where("deck_id = ?", deck.ID).Order("position").Find(&cards).Error; err != nil {
		return err
	}

	e.deck = deck
	e.cards = cards
	e.open = true
	e.flipped = false
	e.resetPass()
	return nil
}

// resetPass restores sequential draw order and clears the session info.
func (e *Engine) resetPass() {
	e.order = make([]int, len(e.cards))
	for i := range e.order {
		e.order[i] = i
	}
	e.info = NewSessionInfo()
}

func (e *Engine) DeckLength() int {
	return len(e.cards)
}

// DrawNext returns the next unanswered card in the current draw order, or nil
// when every card has an outcome (the pass is exhausted). The returned card
// becomes the current card.
func (e *Engine) DrawNext() *DrawnCard {
	for _, i := range e.order {
		if e.info.Answered(i) {
			continue
		}
		e.info.CurrentIndex = i
		return e.drawnCard(i)
	}
	return nil
}

// Draw returns the card at the given index regardless of draw order, or nil
// if the index is out of range. Used for retry passes.
func (e *Engine) Draw(index int) *DrawnCard {
	if index < 0 || index >= len(e.cards) {
		return nil
	}
	e.info.CurrentIndex = index
	return e.drawnCard(index)
}

func (e *Engine) drawnCard(index int) *DrawnCard {
	return &DrawnCard{
		Index:      index,
		Question:   append([]string{}, e.questionSide(e.cards[index])...),
		Difficulty: e.cards[index].Difficulty,
	}
}

func (e *Engine) questionSide(c models.Card) []string {
	if e.flipped {
		return c.Side2
	}
	return c.Side1
}

func (e *Engine) answerSide(c models.Card) []string {
	if e.flipped {
		return c.Side1
	}
	return c.Side2
}

// CheckAnswer checks the submission against the current card's accepted
// answers, records the outcome and adjusts the card's difficulty. Matching is
// case-insensitive on the trimmed input; an empty submission never matches,
// even when a card carries an empty accepted variant.
func (e *Engine) CheckAnswer(text string) (CheckResult, error) {
	if !e.open {
		return CheckResult{}, ErrNoDeckOpen
	}
	idx := e.info.CurrentIndex
	if idx < 0 || idx >= len(e.cards) {
		return CheckResult{}, ErrNoCurrentCard
	}

	card := &e.cards[idx]
	answers := e.answerSide(*card)
	outcome := matches(text, answers)

	if !e.info.Answered(idx) {
		if outcome {
			e.info.CorrectCards = append(e.info.CorrectCards, idx)
			e.info.Correct++
		} else {
			e.info.IncorrectCards = append(e.info.IncorrectCards, idx)
			e.info.Incorrect++
		}
	}

	newDifficulty := card.Difficulty
	if outcome {
		newDifficulty--
	} else {
		newDifficulty++
	}
	if newDifficulty < MinDifficulty {
		newDifficulty = MinDifficulty
	}
	if newDifficulty > MaxDifficulty {
		newDifficulty = MaxDifficulty
	}
	if newDifficulty != card.Difficulty {
		if err := e.db.Model(card).Update("difficulty", newDifficulty).Error; err != nil {
			return CheckResult{}, err
		}
		card.Difficulty = newDifficulty
	}

	return CheckResult{
		Answers:       append([]string{}, answers...),
		NewDifficulty: newDifficulty,
		Outcome:       outcome,
	}, nil
}

func matches(text string, answers []string) bool {
	submitted := strings.ToLower(strings.TrimSpace(text))
	if submitted == "" {
		return false
	}
	for _, a := range answers {
		if submitted == strings.ToLower(strings.TrimSpace(a)) {
			return true
		}
	}
	return false
}

// RevealAnswer returns the current card's accepted answers and difficulty
// without recording an outcome.
func (e *Engine) RevealAnswer() ([]string, int, error) {
	if !e.open {
		return nil, 0, ErrNoDeckOpen
	}
	idx := e.info.CurrentIndex
	if idx < 0 || idx >= len(e.cards) {
		return nil, 0, ErrNoCurrentCard
	}
	card := e.cards[idx]
	return append([]string{}, e.answerSide(card)...), card.Difficulty, nil
}

// Shuffle re-randomizes the draw order and starts the pass over.
func (e *Engine) Shuffle() {
	e.resetPass()
	e.rng.Shuffle(len(e.order), func(i, j int) {
		e.order[i], e.order[j] = e.order[j], e.order[i]
	})
}

// FlipDeck swaps which side of the cards is treated as the question.
func (e *Engine) FlipDeck() {
	e.flipped = !e.flipped
}

func (e *Engine) Flipped() bool {
	return e.flipped
}

// SessionInfo returns a copy of the current session info.
func (e *Engine) SessionInfo() SessionInfo {
	return e.info.clone()
}

// SetSessionInfo replaces the session info, typically to resume a persisted
// pass. Snapshots that violate the invariants are rejected with
// ErrBadSessionInfo and leave the current info untouched.
func (e *Engine) SetSessionInfo(info SessionInfo) error {
	if err := info.validate(len(e.cards)); err != nil {
		return err
	}
	if info.CorrectCards == nil {
		info.CorrectCards = []int{}
	}
	if info.IncorrectCards == nil {
		info.IncorrectCards = []int{}
	}
	e.info = info.clone()
	return nil
}
