package api

import (
	"errors"
	"net/http"

	relay "github.com/caulf/live-telemetry/internal/app"
	"github.com/caulf/live-telemetry/pkg/metrics"
)

// Sentinel kinds for API errors.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnauthorized     = errors.New("missing or invalid producer credential")
)

// writeIngestError translates ingest validation failures into 4xx responses
// with stable reason codes. Anything unrecognized is a 500.
func writeIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, relay.ErrNoSamples):
		metrics.RecordIngestRejected("missing_samples")
		writeError(w, http.StatusBadRequest, "missing_samples", err)
	case errors.Is(err, relay.ErrNoValidTimestamps):
		metrics.RecordIngestRejected("no_valid_timestamps")
		writeError(w, http.StatusBadRequest, "no_valid_timestamps", err)
	default:
		metrics.RecordIngestRejected("internal_error")
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
