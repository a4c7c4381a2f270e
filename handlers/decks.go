package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/settings"
)

func (h *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	decks, err := h.engine.ListDecks()
	if err != nil {
		http.Error(w, "Failed to list decks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

func (h *Handler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}

	if err := h.engine.OpenDeck(name); err != nil {
		http.Error(w, "Failed to create deck", http.StatusInternalServerError)
		return
	}
	if err := h.engine.SetDisplayName("New Deck"); err != nil {
		http.Error(w, "Failed to create deck", http.StatusInternalServerError)
		return
	}
	if err := h.Store.Put(name, settings.Defaults()); err != nil {
		http.Error(w, "Failed to create deck settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(engine.DeckSummary{Name: name, DisplayName: "New Deck"})
}

func (h *Handler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	type DeckUpdateRequest struct {
		DisplayName *string `json:"displayName,omitempty"`
	}
	var req DeckUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.OpenDeck(deckID); err != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}
	if req.DisplayName != nil {
		if err := h.engine.SetDisplayName(*req.DisplayName); err != nil {
			http.Error(w, "Failed to update deck", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(engine.DeckSummary{Name: deckID, DisplayName: h.engine.DisplayName()})
}

func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.DeleteDeck(deckID); err != nil {
		if errors.Is(err, engine.ErrDeckNotFound) {
			http.Error(w, "Deck not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete deck", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ds, err := h.Store.Get(deckID)
	if errors.Is(err, settings.ErrNotFound) {
		ds = settings.Defaults()
		if err := h.Store.Put(deckID, ds); err != nil {
			http.Error(w, "Failed to create settings", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ds)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	if deckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	type SettingsUpdateRequest struct {
		QSide       *string `json:"qSide,omitempty"`
		Autocheck   *bool   `json:"autocheck,omitempty"`
		FirstAnswer *bool   `json:"firstanswer,omitempty"`
	}
	var req SettingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.QSide != nil && *req.QSide != settings.SideOne && *req.QSide != settings.SideTwo {
		http.Error(w, "Invalid question side", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.Store.Update(deckID, func(ds *settings.DeckSettings) {
		if req.QSide != nil {
			ds.QSide = *req.QSide
		}
		if req.Autocheck != nil {
			ds.Autocheck = *req.Autocheck
		}
		if req.FirstAnswer != nil {
			ds.FirstAnswer = *req.FirstAnswer
		}
	})
	if errors.Is(err, settings.ErrNotFound) {
		http.Error(w, "Settings not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	ds, err := h.Store.Get(deckID)
	if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ds)
}
