// Package tourmesh provides a high-level façade over the conversation
// orchestrator and its services (history stores, logging) enabling rapid
// construction of the travel assistant. Most applications interact with this
// package by:
//  1. Wiring an agent.Orchestrator with collaborator clients
//  2. Creating an Engine via New() (optionally overriding the default
//     in-memory history store)
//  3. Calling ProcessQuery per user utterance
//
// The façade keeps the orchestrator pure: it loads the session history
// before the call and saves the updated history after, so the orchestration
// core itself never touches persistence.
package tourmesh

import (
	"context"
	"fmt"

	"github.com/tourmesh/tourmesh/agent"
	"github.com/tourmesh/tourmesh/core"
	"github.com/tourmesh/tourmesh/logging"
	"github.com/tourmesh/tourmesh/session"
)

// Options configures the Engine.
type Options struct {
	// HistoryStore persists per-session conversation histories.
	// Defaults to an in-memory store.
	HistoryStore core.HistoryStore

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Engine aggregates the orchestrator with session persistence.
type Engine struct {
	orchestrator *agent.Orchestrator
	store        core.HistoryStore
	logger       logging.Logger
}

// New creates an Engine wrapping the given orchestrator. Any unset service
// is initialized with a safe default.
func New(orchestrator *agent.Orchestrator, optFns ...func(o *Options)) *Engine {
	opts := Options{
		HistoryStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{orchestrator: orchestrator, store: opts.HistoryStore, logger: opts.Logger}
}

// Process runs one utterance against an explicit history and returns the
// reply plus the updated history, without touching persistence.
func (e *Engine) Process(ctx context.Context, query string, history []core.Turn) (string, []core.Turn) {
	return e.orchestrator.Process(ctx, query, history)
}

// ProcessQuery loads the session history, processes the utterance and saves
// the extended history back. A failed save is reported so the transport can
// surface a retryable error, but the reply itself is already composed.
func (e *Engine) ProcessQuery(ctx context.Context, sessionID, query string) (string, error) {
	history, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session %s: %w", sessionID, err)
	}

	reply, updated := e.orchestrator.Process(ctx, query, history)

	if err := e.store.Save(ctx, sessionID, updated); err != nil {
		return "", fmt.Errorf("save session %s: %w", sessionID, err)
	}
	e.logger.Debug("query processed", "session_id", sessionID, "turns", len(updated))
	return reply, nil
}
