package relay

import (
	"context"
	"sync"

	"github.com/caulf/live-telemetry/internal/adapters/ws"
	"github.com/caulf/live-telemetry/internal/domain/model"
	"github.com/caulf/live-telemetry/internal/domain/window"
	"github.com/caulf/live-telemetry/pkg/logger"
	"github.com/caulf/live-telemetry/pkg/metrics"
)

// Room is the per-session relay actor: it owns the window buffer and the
// broadcast hub and serializes every mutation behind one mutex, so ingest,
// subscribe, and snapshot never interleave within a session. Rooms for
// different sessions share nothing and run fully independently.
type Room struct {
	mu        sync.Mutex
	sessionID string
	buffer    *window.Buffer
	hub       *ws.Hub

	logger logger.Logger
}

// IngestResult reports the outcome of one accepted batch.
type IngestResult struct {
	// Received is the number of samples whose capture time parsed and that
	// were appended to the buffer.
	Received int
	// Dropped is the number of samples discarded for unparsable capture
	// times. Dropping is silent; it never fails the batch by itself.
	Dropped int
	// Evicted is the number of samples pruned out of the window.
	Evicted int
}

func newRoom(sessionID string, windowMS int64) *Room {
	return &Room{
		sessionID: sessionID,
		buffer:    window.New(window.WithWindowMS(windowMS)),
		hub:       ws.NewHub(),
		logger:    logger.Get().Named("room"),
	}
}

// parseBatch validates one producer transmission: capture times are parsed,
// unparsable samples are dropped, and the batch's latest valid timestamp is
// computed. Returns a sentinel error when nothing survives.
func parseBatch(batch model.Batch) (valid []model.Sample, latest int64, dropped int, err error) {
	if len(batch.Samples) == 0 {
		return nil, 0, 0, ErrNoSamples
	}

	valid = make([]model.Sample, 0, len(batch.Samples))
	for _, s := range batch.Samples {
		epoch, perr := s.ParseCaptureTime()
		if perr != nil {
			continue
		}
		s.EpochMS = epoch
		valid = append(valid, s)
		if epoch > latest {
			latest = epoch
		}
	}
	dropped = len(batch.Samples) - len(valid)
	if len(valid) == 0 {
		return nil, 0, dropped, ErrNoValidTimestamps
	}
	return valid, latest, dropped, nil
}

// Ingest validates and applies one producer transmission: parse capture
// times, append the valid samples, prune against this batch's latest valid
// timestamp, and broadcast exactly the newly appended samples. Validation
// failures leave the buffer and the observer set untouched.
func (r *Room) Ingest(ctx context.Context, batch model.Batch) (IngestResult, error) {
	valid, latest, dropped, err := parseBatch(batch)
	if err != nil {
		return IngestResult{Dropped: dropped}, err
	}
	return r.ingestParsed(ctx, batch, valid, latest, dropped), nil
}

// ingestParsed applies an already-validated batch to the room.
func (r *Room) ingestParsed(ctx context.Context, batch model.Batch, valid []model.Sample, latest int64, dropped int) IngestResult {
	r.mu.Lock()
	r.buffer.Append(valid)
	evicted := r.buffer.Prune(latest)
	r.hub.Broadcast(model.LiveUpdateMessage{
		Type:      model.TypeSamples,
		SessionID: batch.SessionID,
		DeviceID:  batch.DeviceID,
		Samples:   valid,
	})
	r.mu.Unlock()

	metrics.RecordBatchIngested(len(valid))
	metrics.RecordSamplesAppended(len(valid))
	if dropped > 0 {
		metrics.RecordSamplesDropped(dropped)
	}
	if evicted > 0 {
		metrics.RecordPrunedSamples(evicted)
	}

	r.logger.Debug(ctx, "batch ingested",
		logger.String("session", r.sessionID),
		logger.String("device", batch.DeviceID),
		logger.Int("received", len(valid)),
		logger.Int("dropped", dropped),
		logger.Int("evicted", evicted),
	)

	return IngestResult{Received: len(valid), Dropped: dropped, Evicted: evicted}
}

// Subscribe registers the connection and enqueues the one-time replay
// message, both under the room lock so the replay snapshot and subsequent
// live updates never interleave. The replay goes out even when the window
// is empty.
func (r *Room) Subscribe(ctx context.Context, c *ws.Conn) {
	r.mu.Lock()
	r.hub.Register(c)
	c.EnqueueJSON(model.ReplayMessage{
		Type:     model.TypeReplay,
		WindowMS: r.buffer.WindowMS(),
		Samples:  r.buffer.Snapshot(),
	})
	r.mu.Unlock()

	metrics.RecordReplay()
	r.logger.Debug(ctx, "observer subscribed",
		logger.String("session", r.sessionID),
		logger.String("conn", c.ID()),
	)
}

// Unsubscribe removes the connection from the hub; idempotent.
func (r *Room) Unsubscribe(c *ws.Conn) {
	r.hub.Unregister(c)
}

// Observers returns the number of live observer connections.
func (r *Room) Observers() int {
	return r.hub.Count()
}

// Buffered returns the number of samples currently in the window.
func (r *Room) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffer.Len()
}
