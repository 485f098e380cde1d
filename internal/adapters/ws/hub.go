// Package ws provides the broadcast hub and observer connection wrapper
// used to fan live-update messages out to subscribed WebSocket clients.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/caulf/live-telemetry/pkg/logger"
	"github.com/caulf/live-telemetry/pkg/metrics"
)

// Hub is the registry of live observer connections for one session.
//
// Delivery is fire-and-forget: Broadcast serializes a message once and
// enqueues it to every registered connection. A failed or dropped send is
// swallowed; a connection leaves the hub only when its own close or error
// signal fires.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}

	logger logger.Logger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns:  make(map[*Conn]struct{}),
		logger: logger.Get().Named("hub"),
	}
}

// Register adds a connection to the live set.
func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	count := len(h.conns)
	h.mu.Unlock()

	metrics.RecordObserverConnect()
	metrics.UpdateObserversConnected(count)
	h.logger.Debug(context.Background(), "observer registered",
		logger.String("conn", c.ID()),
		logger.Int("observers", count),
	)
}

// Unregister removes a connection from the live set; idempotent.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	_, present := h.conns[c]
	if present {
		delete(h.conns, c)
	}
	count := len(h.conns)
	h.mu.Unlock()

	if !present {
		return
	}
	metrics.RecordObserverDisconnect()
	metrics.UpdateObserversConnected(count)
	h.logger.Debug(context.Background(), "observer unregistered",
		logger.String("conn", c.ID()),
		logger.Int("observers", count),
	)
}

// Broadcast serializes message once and attempts delivery to every
// registered connection. Per-connection failures are dropped on the floor;
// they never abort delivery to others and never reach the caller.
func (h *Hub) Broadcast(message any) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error(context.Background(), "broadcast marshal failed", logger.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if !c.Enqueue(data) {
			metrics.RecordBroadcastDrop()
		}
	}
	metrics.RecordBroadcast()
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
