package engine

import "errors"

// Sentinel errors for the engine package.
// Use errors.Is to check: errors.Is(err, engine.ErrNoDeckOpen)
var (
	ErrNoDeckOpen     = errors.New("engine: no deck open")
	ErrNoCurrentCard  = errors.New("engine: no card currently drawn")
	ErrCardOutOfRange = errors.New("engine: card index out of range")
	ErrBadSessionInfo = errors.New("engine: session info violates invariants")
	ErrDeckNotFound   = errors.New("engine: deck not found")
)
