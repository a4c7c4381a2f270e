package config

import (
	"os"

	"github.com/lowrimor/cardtrain/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Database *gorm.DB

func Connect() error {
	var err error
	dbURL := os.Getenv("DB_URL")
	if dbURL != "" {
		Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	} else {
		Database, err = gorm.Open(sqlite.Open(Env.DBPath), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}

	err = Database.AutoMigrate(&models.Deck{}, &models.Card{}, &models.DeckSetting{})
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}
