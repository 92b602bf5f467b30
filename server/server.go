// Package server exposes the query engine over HTTP: a JSON query endpoint,
// a health check and permissive CORS for browser clients. The server owns
// the transport concerns the orchestration core excludes: request
// validation, session-id minting and per-session serialization.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tourmesh/tourmesh/logging"
)

// QueryProcessor is the engine-side contract the server drives.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, sessionID, query string) (string, error)
}

// Options configure the Server.
type Options struct {
	ServiceName string
	Logger      logging.Logger
}

// Server is the HTTP transport for the query engine.
type Server struct {
	processor QueryProcessor
	name      string
	logger    logging.Logger

	// locks serializes in-flight requests per session key so two concurrent
	// requests cannot interleave history appends.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New constructs a Server around a processor.
func New(processor QueryProcessor, optFns ...func(o *Options)) *Server {
	opts := Options{
		ServiceName: "Multi-Agent Tourism System",
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{
		processor: processor,
		name:      opts.ServiceName,
		logger:    opts.Logger,
		locks:     map[string]*sync.Mutex{},
	}
}

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type queryResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return withCORS(mux)
}

// ListenAndServe starts serving on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr, "service", s.name)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, queryResponse{Success: false, Error: "No query provided"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeJSON(w, http.StatusBadRequest, queryResponse{Success: false, Error: "Query cannot be empty"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	reply, err := s.processor.ProcessQuery(r.Context(), sessionID, query)
	if err != nil {
		s.logger.Error("query processing failed", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, queryResponse{Success: false, Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Success: true, Response: reply, SessionID: sessionID})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": s.name})
}

// lockSession acquires the per-session mutex, creating it on first use.
func (s *Server) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// withCORS applies a permissive CORS policy and short-circuits preflight.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
