package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/logger"
	"github.com/lowrimor/cardtrain/models"
)

// Question-side values for DeckSettings.QSide.
const (
	SideOne = "side1"
	SideTwo = "side2"
)

// ErrNotFound is returned by Get when a deck has no settings entry. Callers
// are expected to have run BackfillDefaults at startup, so hitting this for a
// known deck is a bug, not a user condition.
var ErrNotFound = errors.New("settings: no entry for deck")

// DeckSettings are the per-deck training preferences, plus an optional
// session snapshot used to resume a pass after reload.
type DeckSettings struct {
	QSide       string              `json:"qSide"`
	Autocheck   bool                `json:"autocheck"`
	FirstAnswer bool                `json:"firstanswer"`
	State       *engine.SessionInfo `json:"state,omitempty"`
}

// Defaults returns the settings a deck starts with.
func Defaults() DeckSettings {
	return DeckSettings{
		QSide:       SideOne,
		Autocheck:   true,
		FirstAnswer: true,
	}
}

// Store is the durable mapping from deck name to DeckSettings. All updates go
// through read-modify-write; there is no partial-field update primitive.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStore(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// Get returns the settings for the given deck. A persisted session snapshot
// that fails to parse is treated as absent, never surfaced as an error.
func (s *Store) Get(deckID string) (DeckSettings, error) {
	var row models.DeckSetting
	err := s.db.Where("deck_name = ?", deckID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DeckSettings{}, fmt.Errorf("%w: %s", ErrNotFound, deckID)
	}
	if err != nil {
		return DeckSettings{}, err
	}

	out := DeckSettings{
		QSide:       row.QSide,
		Autocheck:   row.Autocheck,
		FirstAnswer: row.FirstAnswer,
	}
	if len(row.State) > 0 {
		var state engine.SessionInfo
		if err := json.Unmarshal(row.State, &state); err != nil {
			s.log.Warn("discarding malformed session state", "deck", deckID, "error", err)
		} else {
			out.State = &state
		}
	}
	return out, nil
}

// Put writes the full settings record for the deck, creating the row if it
// does not exist yet.
func (s *Store) Put(deckID string, ds DeckSettings) error {
	var state []byte
	if ds.State != nil {
		var err error
		state, err = json.Marshal(ds.State)
		if err != nil {
			return err
		}
	}

	var row models.DeckSetting
	err := s.db.Where("deck_name = ?", deckID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.DeckSetting{
			DeckName:    deckID,
			QSide:       ds.QSide,
			Autocheck:   ds.Autocheck,
			FirstAnswer: ds.FirstAnswer,
			State:       state,
		}
		return s.db.Create(&row).Error
	}
	if err != nil {
		return err
	}

	row.QSide = ds.QSide
	row.Autocheck = ds.Autocheck
	row.FirstAnswer = ds.FirstAnswer
	row.State = state
	return s.db.Save(&row).Error
}

// Update applies fn to the current settings under the read-modify-write
// discipline and writes the result back.
func (s *Store) Update(deckID string, fn func(*DeckSettings)) error {
	ds, err := s.Get(deckID)
	if err != nil {
		return err
	}
	fn(&ds)
	return s.Put(deckID, ds)
}

// BackfillDefaults ensures every known deck has a settings entry, creating
// default rows where missing. Existing entries are left untouched. Called
// once at process start.
func (s *Store) BackfillDefaults(knownDeckIDs []string) error {
	for _, id := range knownDeckIDs {
		_, err := s.Get(id)
		if errors.Is(err, ErrNotFound) {
			if err := s.Put(id, Defaults()); err != nil {
				return err
			}
			s.log.Info("backfilled default settings", "deck", id)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
