package config

import "os"

type Environment struct {
	IsDevelopment bool
	DBPath        string
	LogMode       string
}

var Env Environment

func init() {
	dbPath := os.Getenv("CARDTRAIN_DB")
	if dbPath == "" {
		dbPath = "cardtrain.db"
	}

	logMode := os.Getenv("LOG_MODE")
	isDev := logMode != "prod" && logMode != "production"

	Env = Environment{
		IsDevelopment: isDev,
		DBPath:        dbPath,
		LogMode:       logMode,
	}
}
