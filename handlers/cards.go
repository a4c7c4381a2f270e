package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lowrimor/cardtrain/engine"
)

func (h *Handler) GetCards(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.OpenDeck(deckID); err != nil {
		http.Error(w, "Failed to open deck", http.StatusInternalServerError)
		return
	}
	view, err := h.engine.ExposeDeck()
	if err != nil {
		http.Error(w, "Failed to expose deck", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	type CardRequestData struct {
		Side1      []string `json:"side1"`
		Side2      []string `json:"side2"`
		Difficulty int      `json:"difficulty"`
	}
	var req CardRequestData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.OpenDeck(deckID); err != nil {
		http.Error(w, "Failed to open deck", http.StatusInternalServerError)
		return
	}
	if err := h.engine.AddCard(req.Side1, req.Side2, req.Difficulty); err != nil {
		http.Error(w, "Failed to create card", http.StatusInternalServerError)
		return
	}

	view, err := h.engine.ExposeDeck()
	if err != nil {
		http.Error(w, "Failed to expose deck", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(view.Cards[len(view.Cards)-1])
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	position, err := strconv.Atoi(r.PathValue("position"))
	if deckID == "" || err != nil {
		http.Error(w, "Deck ID and card position are required", http.StatusBadRequest)
		return
	}

	type CardUpdateRequest struct {
		Side1      *[]string `json:"side1,omitempty"`
		Side2      *[]string `json:"side2,omitempty"`
		Difficulty *int      `json:"difficulty,omitempty"`
	}
	var req CardUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.OpenDeck(deckID); err != nil {
		http.Error(w, "Failed to open deck", http.StatusInternalServerError)
		return
	}
	view, err := h.engine.ExposeDeck()
	if err != nil {
		http.Error(w, "Failed to expose deck", http.StatusInternalServerError)
		return
	}
	if position < 0 || position >= len(view.Cards) {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}

	card := view.Cards[position]
	if req.Side1 != nil {
		card.Side1 = *req.Side1
	}
	if req.Side2 != nil {
		card.Side2 = *req.Side2
	}
	if req.Difficulty != nil {
		card.Difficulty = *req.Difficulty
	}

	if err := h.engine.EditCard(position, card.Side1, card.Side2, card.Difficulty); err != nil {
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	position, err := strconv.Atoi(r.PathValue("position"))
	if deckID == "" || err != nil {
		http.Error(w, "Deck ID and card position are required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.OpenDeck(deckID); err != nil {
		http.Error(w, "Failed to open deck", http.StatusInternalServerError)
		return
	}
	if err := h.engine.DeleteCard(position); err != nil {
		if errors.Is(err, engine.ErrCardOutOfRange) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete card", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
