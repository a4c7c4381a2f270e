package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/logger"
	"github.com/lowrimor/cardtrain/models"
	"github.com/lowrimor/cardtrain/settings"
)

func testServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Deck{}, &models.Card{}, &models.DeckSetting{}))

	store := settings.NewStore(db, logger.NewNop())
	h := New(db, store, logger.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/decks", h.ListDecks)
	mux.HandleFunc("POST /api/decks", h.CreateDeck)
	mux.HandleFunc("PUT /api/decks/{deckID}", h.UpdateDeck)
	mux.HandleFunc("DELETE /api/decks/{deckID}", h.DeleteDeck)
	mux.HandleFunc("GET /api/decks/{deckID}/cards", h.GetCards)
	mux.HandleFunc("POST /api/decks/{deckID}/cards", h.CreateCard)
	mux.HandleFunc("PUT /api/decks/{deckID}/cards/{position}", h.UpdateCard)
	mux.HandleFunc("DELETE /api/decks/{deckID}/cards/{position}", h.DeleteCard)
	mux.HandleFunc("GET /api/decks/{deckID}/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/decks/{deckID}/settings", h.UpdateSettings)
	mux.HandleFunc("POST /api/train/{deckID}", h.StartTraining)
	mux.HandleFunc("POST /api/train/{deckID}/answer", h.SubmitAnswer)
	mux.HandleFunc("POST /api/train/{deckID}/report", h.ReportOutcome)
	mux.HandleFunc("POST /api/train/{deckID}/next", h.NextCard)
	mux.HandleFunc("POST /api/train/{deckID}/retry", h.RetryPass)
	mux.HandleFunc("POST /api/train/{deckID}/shuffle", h.ShufflePass)
	mux.HandleFunc("POST /api/train/{deckID}/flip", h.FlipQuestionSide)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, db
}

func seedDeck(t *testing.T, db *gorm.DB, name string, pairs [][2]string) {
	t.Helper()
	eng := engine.New(db)
	require.NoError(t, eng.OpenDeck(name))
	for _, p := range pairs {
		require.NoError(t, eng.AddCard([]string{p[0]}, []string{p[1]}, 0))
	}
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func TestTrainingFlow(t *testing.T) {
	srv, db := testServer(t)
	seedDeck(t, db, "100", [][2]string{
		{"milk", "llaeth"},
		{"bread", "bara"},
	})

	resp, body := doJSON(t, "POST", srv.URL+"/api/train/100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "presenting", view.State)
	require.NotNil(t, view.Question)
	assert.Equal(t, "milk", view.Question.Text)
	assert.Len(t, view.Progress, 2)

	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/answer", map[string]string{"answer": "llaeth"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "checked", view.State)
	require.NotNil(t, view.Answer)
	require.NotNil(t, view.Answer.Outcome)
	assert.True(t, *view.Answer.Outcome)

	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "presenting", view.State)
	assert.Equal(t, "bread", view.Question.Text)

	// flipping re-presents the same card's other face without advancing
	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/flip", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	require.NotNil(t, view.Question)
	assert.Equal(t, "bara", view.Question.Text)
	assert.True(t, view.Question.FlipOnly)

	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/answer", map[string]string{"answer": "wrong"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.False(t, *view.Answer.Outcome)

	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "exhausted", view.State)
	require.NotNil(t, view.Score)
	assert.Equal(t, 1, view.Score.Correct)
	assert.Equal(t, 2, view.Score.Total)
	assert.True(t, view.Score.HasIncorrect)

	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/retry", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "presenting", view.State)
	assert.Equal(t, "bara", view.Question.Text, "retry pass keeps the flipped orientation")
	assert.Len(t, view.Progress, 1)
}

func TestRejectedOperationKeepsCurrentScreen(t *testing.T) {
	srv, db := testServer(t)
	seedDeck(t, db, "100", [][2]string{{"milk", "llaeth"}})

	resp, _ := doJSON(t, "POST", srv.URL+"/api/train/100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// drawing while a card is already presented is a no-op; the body still
	// carries the current card instead of blanking the screen
	resp, body := doJSON(t, "POST", srv.URL+"/api/train/100/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "presenting", view.State)
	require.NotNil(t, view.Question)
	assert.Equal(t, "milk", view.Question.Text)
	assert.Len(t, view.Progress, 1)

	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/answer", map[string]string{"answer": "llaeth"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	require.NotNil(t, view.Answer)

	// the same holds for a repeated submission while checked
	resp, body = doJSON(t, "POST", srv.URL+"/api/train/100/answer", map[string]string{"answer": "llaeth"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "checked", view.State)
	require.NotNil(t, view.Answer)
	assert.Equal(t, []string{"llaeth"}, view.Answer.Answers)
}

func TestTrainingRequiresActiveSession(t *testing.T) {
	srv, db := testServer(t)
	seedDeck(t, db, "100", [][2]string{{"milk", "llaeth"}})
	seedDeck(t, db, "300", [][2]string{{"IAM", "Identity and Access Management"}})

	resp, _ := doJSON(t, "POST", srv.URL+"/api/train/100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, "POST", srv.URL+"/api/train/300/answer", map[string]string{"answer": "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeckAndCardCRUD(t *testing.T) {
	srv, _ := testServer(t)

	resp, body := doJSON(t, "POST", srv.URL+"/api/decks", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var deck engine.DeckSummary
	require.NoError(t, json.Unmarshal(body, &deck))
	assert.NotEmpty(t, deck.Name)
	assert.Equal(t, "New Deck", deck.DisplayName)

	resp, body = doJSON(t, "POST", srv.URL+"/api/decks/"+deck.Name+"/cards", map[string]any{
		"side1": []string{"salt"},
		"side2": []string{"halen"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var card engine.CardView
	require.NoError(t, json.Unmarshal(body, &card))
	assert.Equal(t, 0, card.Index)
	assert.Equal(t, engine.DefaultDifficulty, card.Difficulty)

	resp, body = doJSON(t, "PUT", srv.URL+"/api/decks/"+deck.Name+"/cards/0", map[string]any{
		"side2": []string{"halen", "yr halen"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &card))
	assert.Equal(t, []string{"salt"}, card.Side1, "untouched side carries over")
	assert.Equal(t, []string{"halen", "yr halen"}, card.Side2)

	resp, body = doJSON(t, "GET", srv.URL+"/api/decks/"+deck.Name+"/cards", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view engine.DeckView
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Cards, 1)

	resp, _ = doJSON(t, "DELETE", srv.URL+"/api/decks/"+deck.Name+"/cards/0", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, "DELETE", srv.URL+"/api/decks/"+deck.Name, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, "GET", srv.URL+"/api/decks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var decks []engine.DeckSummary
	require.NoError(t, json.Unmarshal(body, &decks))
	assert.Empty(t, decks)
}

func TestSettingsEndpoints(t *testing.T) {
	srv, db := testServer(t)
	seedDeck(t, db, "100", [][2]string{{"milk", "llaeth"}})

	resp, body := doJSON(t, "GET", srv.URL+"/api/decks/100/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ds settings.DeckSettings
	require.NoError(t, json.Unmarshal(body, &ds))
	assert.Equal(t, settings.Defaults(), ds, "missing entry is backfilled with defaults")

	resp, body = doJSON(t, "PUT", srv.URL+"/api/decks/100/settings", map[string]any{
		"autocheck": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &ds))
	assert.False(t, ds.Autocheck)
	assert.Equal(t, settings.SideOne, ds.QSide, "untouched fields carry over")

	resp, _ = doJSON(t, "PUT", srv.URL+"/api/decks/100/settings", map[string]any{
		"qSide": "side3",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
