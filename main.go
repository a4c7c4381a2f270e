package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/lowrimor/cardtrain/config"
	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/handlers"
	"github.com/lowrimor/cardtrain/logger"
	"github.com/lowrimor/cardtrain/seed"
	"github.com/lowrimor/cardtrain/settings"
)

func init() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
	}
}

func main() {
	zlog, err := logger.New(config.Env.LogMode)
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer zlog.Sync()

	// Initialize database connection
	config.Connect()

	store := settings.NewStore(config.Database, zlog)
	eng := engine.New(config.Database)

	// Sample decks on first run
	if err := seed.Ensure(eng, zlog); err != nil {
		zlog.Fatal("failed to seed sample decks", "error", err)
	}

	// Every deck the engine knows about gets a settings entry
	decks, err := eng.ListDecks()
	if err != nil {
		zlog.Fatal("failed to list decks", "error", err)
	}
	names := make([]string, len(decks))
	for i, d := range decks {
		names[i] = d.Name
	}
	if err := store.BackfillDefaults(names); err != nil {
		zlog.Fatal("failed to backfill deck settings", "error", err)
	}

	h := handlers.New(config.Database, store, zlog)
	mux := http.NewServeMux()

	// Deck
	mux.HandleFunc("GET /api/decks", h.ListDecks)
	mux.HandleFunc("POST /api/decks", h.CreateDeck)
	mux.HandleFunc("PUT /api/decks/{deckID}", h.UpdateDeck)
	mux.HandleFunc("DELETE /api/decks/{deckID}", h.DeleteDeck)

	// Cards
	mux.HandleFunc("GET /api/decks/{deckID}/cards", h.GetCards)
	mux.HandleFunc("POST /api/decks/{deckID}/cards", h.CreateCard)
	mux.HandleFunc("PUT /api/decks/{deckID}/cards/{position}", h.UpdateCard)
	mux.HandleFunc("DELETE /api/decks/{deckID}/cards/{position}", h.DeleteCard)

	// Settings
	mux.HandleFunc("GET /api/decks/{deckID}/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/decks/{deckID}/settings", h.UpdateSettings)

	// Training session
	mux.HandleFunc("POST /api/train/{deckID}", h.StartTraining)
	mux.HandleFunc("POST /api/train/{deckID}/answer", h.SubmitAnswer)
	mux.HandleFunc("POST /api/train/{deckID}/report", h.ReportOutcome)
	mux.HandleFunc("POST /api/train/{deckID}/next", h.NextCard)
	mux.HandleFunc("POST /api/train/{deckID}/retry", h.RetryPass)
	mux.HandleFunc("POST /api/train/{deckID}/shuffle", h.ShufflePass)
	mux.HandleFunc("POST /api/train/{deckID}/flip", h.FlipQuestionSide)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	zlog.Info("server listening", "addr", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		zlog.Fatal("server error", "error", err)
	}
}
