package models

import (
	"gorm.io/gorm"
)

// Deck represents a named, ordered collection of cards
type Deck struct {
	gorm.Model
	Name        string `gorm:"not null;size:100;uniqueIndex"`
	DisplayName string `gorm:"size:200"`

	Cards []Card `gorm:"foreignKey:DeckID"`
}
