package api

import (
	"net/http"

	"github.com/caulf/live-telemetry/internal/adapters/ws"
	"github.com/caulf/live-telemetry/pkg/logger"
	"github.com/gorilla/websocket"
)

// upgrader accepts any origin: subscriptions carry no credential and the
// hosting layer fronts this endpoint.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// handleSubscribe handles GET /sessions/{id}/live stream upgrades. The
// handler blocks servicing the connection until the observer disconnects
// or the transport errors, then unregisters it.
func (h *SessionsHandler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	sessionID := r.PathValue("session")

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure response.
		logger.Get().Warn(r.Context(), "websocket upgrade failed",
			logger.String("session", sessionID),
			logger.Error(err),
		)
		return
	}

	conn := ws.NewConn(sock, ws.WithSendBuffer(h.deps.SendBufferSize()))
	h.deps.Subscribe(r.Context(), sessionID, conn)
	conn.Run(func() {
		h.deps.Unsubscribe(sessionID, conn)
	})
}
