package models

import (
	"gorm.io/gorm"
)

// DeckSetting is the persisted per-deck preferences row. State holds an
// optional JSON session snapshot for resuming a training pass after reload;
// it is nil when no resumable session exists.
type DeckSetting struct {
	gorm.Model
	DeckName    string `gorm:"not null;size:100;uniqueIndex"`
	QSide       string `gorm:"size:10"`
	Autocheck   bool
	FirstAnswer bool
	State       []byte
}
