package game

import (
	"errors"
	"log/slog"

	"yokaiquest/internal/content"
)

// Engine resolves actions against a ledger. It owns no mutable state of
// its own: the catalog is immutable content and the randomness source is
// stateless, so one engine can serve any number of ledgers.
type Engine struct {
	Content *content.Catalog
	Rand    Source
	Log     *slog.Logger
}

// NewEngine wires an engine over a loaded catalog.
func NewEngine(c *content.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Content: c, Rand: CryptoSource{}, Log: logger}
}

var (
	// ErrWrongTurn rejects a resolution entry point invoked out of turn
	// or outside an active battle.
	ErrWrongTurn = errors.New("not your turn")
	// ErrUnknownID rejects a lookup of missing content.
	ErrUnknownID = errors.New("unknown content id")
	// ErrInvalidAction rejects an action the current state forbids.
	ErrInvalidAction = errors.New("invalid action")
)
