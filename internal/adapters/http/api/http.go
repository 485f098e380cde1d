// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/caulf/live-telemetry/internal/adapters/ws"
	relay "github.com/caulf/live-telemetry/internal/app"
	"github.com/caulf/live-telemetry/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ingest applies one producer transmission to the addressed session.
	Ingest(ctx context.Context, sessionID string, batch model.Batch) (relay.IngestResult, error)

	// Subscribe registers an observer connection and sends the replay.
	Subscribe(ctx context.Context, sessionID string, c *ws.Conn)

	// Unsubscribe removes an observer connection; idempotent.
	Unsubscribe(sessionID string, c *ws.Conn)

	// SendBufferSize exposes the per-observer outbound queue capacity.
	SendBufferSize() int
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the relay API.
type Server struct {
	sessionsHandler *SessionsHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	producerToken   string
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, producerToken string, maxBatchSamples int) *Server {
	return &Server{
		sessionsHandler: NewSessionsHandler(deps, maxBatchSamples),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		producerToken:   producerToken,
	}
}

// Register attaches all HTTP routes to mux. Producer authentication wraps
// the ingest path only; subscriptions carry no credential.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sessions/", s.sessionsHandler.Handle(s.producerToken))
}

type ingestResponse struct {
	OK       bool `json:"ok"`
	Received int  `json:"received"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
