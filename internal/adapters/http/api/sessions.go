package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/caulf/live-telemetry/internal/domain/model"
)

// SessionsHandler dispatches the per-session routes:
//
//	POST /sessions/{id}/telemetry  -> producer ingest
//	GET  /sessions/{id}/live       -> observer WebSocket subscribe
type SessionsHandler struct {
	deps            Dependencies
	maxBatchSamples int
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies, maxBatchSamples int) *SessionsHandler {
	return &SessionsHandler{deps: deps, maxBatchSamples: maxBatchSamples}
}

// Handle returns the dispatcher for /sessions/ routes. The ingest leg is
// wrapped with producer authentication; the subscribe leg is not.
func (h *SessionsHandler) Handle(producerToken string) http.HandlerFunc {
	ingest := AuthMiddleware(producerToken, MetricsMiddleware(h.handleIngest, "ingest"))
	subscribe := MetricsMiddleware(h.handleSubscribe, "subscribe")

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, leg, ok := splitSessionPath(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		r.SetPathValue("session", sessionID)
		switch leg {
		case "telemetry":
			ingest(w, r)
		case "live":
			subscribe(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

// splitSessionPath extracts the session id and leg from
// /sessions/{id}/{leg}.
func splitSessionPath(path string) (sessionID, leg string, ok bool) {
	rest := strings.TrimPrefix(path, "/sessions/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// handleIngest handles POST /sessions/{id}/telemetry requests.
func (h *SessionsHandler) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	var batch model.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_input", fmt.Errorf("%w: %w", ErrMalformedInput, err))
		return
	}
	if h.maxBatchSamples > 0 && len(batch.Samples) > h.maxBatchSamples {
		writeError(w, http.StatusBadRequest, "malformed_input",
			fmt.Errorf("%w: batch exceeds %d samples", ErrMalformedInput, h.maxBatchSamples))
		return
	}

	result, err := h.deps.Ingest(r.Context(), r.PathValue("session"), batch)
	if err != nil {
		writeIngestError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{OK: true, Received: result.Received})
}
