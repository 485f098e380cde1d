package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/caulf/live-telemetry/pkg/logger"
	"github.com/caulf/live-telemetry/pkg/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Write deadline for a single outbound frame. There is deliberately no read
// deadline and no ping loop: connections persist until the observer
// disconnects or the transport errors.
const writeTimeout = 10 * time.Second

const defaultSendBuffer = 256

// Conn wraps one observer WebSocket connection with a bounded outbound
// queue drained by a dedicated writer goroutine, so a slow observer never
// blocks a broadcast or any other observer.
type Conn struct {
	id   string
	sock *websocket.Conn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once

	logger logger.Logger
}

// ConnOption applies a configuration option to a Conn.
type ConnOption func(*Conn)

// WithSendBuffer sets the outbound queue capacity.
func WithSendBuffer(size int) ConnOption {
	return func(c *Conn) {
		if size > 0 {
			c.send = make(chan []byte, size)
		}
	}
}

// NewConn wraps an upgraded WebSocket connection.
func NewConn(sock *websocket.Conn, opts ...ConnOption) *Conn {
	c := &Conn{
		id:   uuid.New().String(),
		sock: sock,
		send: make(chan []byte, defaultSendBuffer),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logger.Get().Named("conn")
	return c
}

// ID returns the connection's opaque identity.
func (c *Conn) ID() string {
	return c.id
}

// Pending returns the number of frames waiting in the outbound queue.
func (c *Conn) Pending() int {
	return len(c.send)
}

// Enqueue places a serialized frame on the outbound queue without blocking.
// Returns false when the queue is full or the connection is closed; the
// frame is then dropped, which callers treat as a swallowed send failure.
func (c *Conn) Enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// EnqueueJSON serializes v and enqueues it. Failures are swallowed the same
// way broadcast failures are; the bool is informational.
func (c *Conn) EnqueueJSON(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error(context.Background(), "enqueue marshal failed",
			logger.String("conn", c.id),
			logger.Error(err),
		)
		return false
	}
	return c.Enqueue(data)
}

// Run services the connection until it closes: a writer goroutine drains
// the outbound queue while the calling goroutine reads (and discards)
// inbound frames to detect the close/error signal. onClose runs exactly
// once, before the transport is torn down.
func (c *Conn) Run(onClose func()) {
	go c.writePump()
	c.readPump(onClose)
}

// writePump drains the outbound queue. A failed write is counted and
// dropped; the pump keeps going until the connection is closed so that
// reaping stays coupled to the read side's close/error signal only.
func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				metrics.RecordSendError()
				c.logger.Debug(context.Background(), "observer write failed",
					logger.String("conn", c.id),
					logger.Error(err),
				)
			}
		}
	}
}

// readPump consumes inbound frames. The channel is logically
// one-directional after the handshake, so frames are ignored; reading only
// serves to surface the connection's close or error signal.
func (c *Conn) readPump(onClose func()) {
	defer func() {
		onClose()
		c.Close()
	}()
	for {
		if _, _, err := c.sock.ReadMessage(); err != nil {
			return
		}
	}
}

// Close tears the connection down; idempotent, best-effort.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.sock.Close()
	})
}
