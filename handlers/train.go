package handlers

import (
	"encoding/json"
	"net/http"
)

// StartTraining begins (or resumes) a training session for the deck.
func (h *Handler) StartTraining(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.trainer.StartSession(deckID); err != nil {
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	h.writeView(w)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	type AnswerRequest struct {
		Answer string `json:"answer"`
	}
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.withSession(w, r, func() error {
		return h.trainer.SubmitAnswer(req.Answer)
	})
}

// ReportOutcome records the manual-mode self-report ("I was right" / "I was
// wrong") and advances to the next card.
func (h *Handler) ReportOutcome(w http.ResponseWriter, r *http.Request) {
	type ReportRequest struct {
		Correct bool `json:"correct"`
	}
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.withSession(w, r, func() error {
		return h.trainer.ReportOutcome(req.Correct)
	})
}

func (h *Handler) NextCard(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.trainer.DrawNext)
}

func (h *Handler) RetryPass(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.trainer.Retry)
}

func (h *Handler) ShufflePass(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.trainer.Shuffle)
}

func (h *Handler) FlipQuestionSide(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.trainer.ToggleQuestionSide)
}

// withSession runs a controller operation against the active session for the
// deck in the URL, then writes the recorded view. Requests against a deck
// with no active session are rejected.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, op func() error) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.trainer.DeckID() != deckID {
		http.Error(w, "No active session for deck", http.StatusConflict)
		return
	}

	if err := op(); err != nil {
		http.Error(w, "Session operation failed", http.StatusInternalServerError)
		return
	}
	h.writeView(w)
}

func (h *Handler) writeView(w http.ResponseWriter) {
	view := h.view.View()
	view.State = h.trainer.State().String()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
