// Package relay provides the core relay service that implements the
// dependencies required by the HTTP API: a keyed registry of per-session
// rooms, each owning a window buffer and a broadcast hub.
package relay

import (
	"context"
	"sync"

	"github.com/caulf/live-telemetry/internal/adapters/ws"
	"github.com/caulf/live-telemetry/internal/domain/model"
	"github.com/caulf/live-telemetry/pkg/logger"
	"github.com/caulf/live-telemetry/pkg/metrics"
)

// Default service configuration.
const (
	defaultWindowMS   = 30_000
	defaultSendBuffer = 256
)

// Service implements the API dependencies for the telemetry relay.
//
// Rooms are created lazily on first access to a session identifier and are
// never evicted here: lifecycle beyond lazy creation belongs to the hosting
// layer, and a recreated room starting empty is indistinguishable from a
// brand-new session.
type Service struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	// Configuration
	windowMS   int64
	sendBuffer int

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWindowMS sets the retention window applied to every session buffer.
func WithWindowMS(ms int64) Option {
	return func(s *Service) {
		if ms > 0 {
			s.windowMS = ms
		}
	}
}

// WithSendBufferSize sets the outbound queue capacity per observer.
func WithSendBufferSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.sendBuffer = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rooms:      make(map[string]*Room),
		windowMS:   defaultWindowMS,
		sendBuffer: defaultSendBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the service live.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.logger.Info(ctx, "relay service started",
		logger.Int64("windowMs", s.windowMS),
		logger.Int("sendBuffer", s.sendBuffer),
	)
	return nil
}

// Stop shuts the service down. All state is volatile, so there is nothing
// to flush; rooms simply stop receiving traffic when the listener closes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "relay service stopped")
}

// Room returns the relay room for a session, creating it on first access.
func (s *Service) Room(sessionID string) *Room {
	s.mu.RLock()
	r, ok := s.rooms[sessionID]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok = s.rooms[sessionID]; ok {
		return r
	}
	r = newRoom(sessionID, s.windowMS)
	s.rooms[sessionID] = r
	metrics.UpdateSessionsActive(len(s.rooms))
	s.logger.Info(context.Background(), "room created", logger.String("session", sessionID))
	return r
}

// Ingest routes one producer transmission to the addressed session's room.
// The routing layer's session identifier picks the room; the batch keeps its
// own sessionId/deviceId tags for the broadcast message. Validation runs
// before the room lookup so a rejected batch never creates a room.
func (s *Service) Ingest(ctx context.Context, sessionID string, batch model.Batch) (IngestResult, error) {
	valid, latest, dropped, err := parseBatch(batch)
	if err != nil {
		return IngestResult{Dropped: dropped}, err
	}
	return s.Room(sessionID).ingestParsed(ctx, batch, valid, latest, dropped), nil
}

// Subscribe registers an observer connection with its session's room and
// sends the replay message.
func (s *Service) Subscribe(ctx context.Context, sessionID string, c *ws.Conn) {
	s.Room(sessionID).Subscribe(ctx, c)
}

// Unsubscribe removes an observer connection from its session's room.
func (s *Service) Unsubscribe(sessionID string, c *ws.Conn) {
	s.mu.RLock()
	r, ok := s.rooms[sessionID]
	s.mu.RUnlock()
	if ok {
		r.Unsubscribe(c)
	}
}

// SendBufferSize returns the configured per-observer queue capacity.
func (s *Service) SendBufferSize() int {
	return s.sendBuffer
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	started := s.started
	windowMS := s.windowMS
	s.mu.RUnlock()

	observers := 0
	buffered := 0
	for _, r := range rooms {
		observers += r.Observers()
		buffered += r.Buffered()
	}

	metrics.UpdateSessionsActive(len(rooms))
	metrics.UpdateObserversConnected(observers)
	metrics.UpdateBufferedSamples(buffered)

	return map[string]interface{}{
		"started":         started,
		"windowMs":        windowMS,
		"sessions":        len(rooms),
		"observers":       observers,
		"bufferedSamples": buffered,
	}
}
