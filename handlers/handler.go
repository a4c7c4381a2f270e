package handlers

import (
	"sync"

	"gorm.io/gorm"

	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/logger"
	"github.com/lowrimor/cardtrain/session"
	"github.com/lowrimor/cardtrain/settings"
)

// Handler carries the shared collaborators for every route. All operations
// run to completion under one mutex: the system is single-user and
// event-driven, there are no parallel sessions.
type Handler struct {
	DB    *gorm.DB
	Log   *logger.Logger
	Store *settings.Store

	mu      sync.Mutex
	engine  *engine.Engine
	view    *ViewRecorder
	trainer *session.Controller
}

func New(db *gorm.DB, store *settings.Store, log *logger.Logger) *Handler {
	eng := engine.New(db)
	view := &ViewRecorder{}
	return &Handler{
		DB:      db,
		Log:     log,
		Store:   store,
		engine:  eng,
		view:    view,
		trainer: session.NewController(eng, store, view, log),
	}
}
