package models

import (
	"gorm.io/gorm"
)

// Card represents an individual flashcard. Each side holds one or more
// accepted text variants; the first variant is the primary one.
type Card struct {
	gorm.Model
	DeckID uint `gorm:"not null;index"`
	Deck   Deck `gorm:"foreignKey:DeckID" json:"-"`

	Position int `gorm:"not null"`

	Side1 []string `gorm:"serializer:json;not null"`
	Side2 []string `gorm:"serializer:json;not null"`

	Difficulty int `gorm:"default:5"`
}
