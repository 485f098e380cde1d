// Package window implements the sliding time-window buffer holding the
// trailing span of samples for one session.
package window

import "github.com/caulf/live-telemetry/internal/domain/model"

// Default retention window in milliseconds.
const defaultWindowMS = 30_000

// Buffer is an append-and-prune store of samples in arrival order.
//
// A Buffer is exclusively owned by its relay room and is not safe for
// concurrent use; the room serializes all access.
type Buffer struct {
	samples  []model.Sample
	windowMS int64
}

// New creates an empty buffer with configuration options.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		windowMS: defaultWindowMS,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WindowMS returns the configured retention window in milliseconds.
func (b *Buffer) WindowMS() int64 {
	return b.windowMS
}

// Append adds samples to the tail, preserving arrival order. Batches are
// assumed roughly time-ordered; no re-sort happens here.
func (b *Buffer) Append(samples []model.Sample) {
	b.samples = append(b.samples, samples...)
}

// Prune retains only samples captured at or after referenceMS minus the
// window. referenceMS is the latest valid timestamp of the batch that
// triggered the prune, not a running maximum: a delayed batch whose own
// latest is older than resident samples prunes with that older value and
// can evict newer samples. That is the documented retention contract.
// Returns the number of evicted samples.
func (b *Buffer) Prune(referenceMS int64) int {
	cutoff := referenceMS - b.windowMS
	kept := b.samples[:0]
	for _, s := range b.samples {
		if s.EpochMS >= cutoff {
			kept = append(kept, s)
		}
	}
	evicted := len(b.samples) - len(kept)
	b.samples = kept
	return evicted
}

// Snapshot returns a copy of the current contents in buffer order. The
// result is never nil so an empty window serializes as an empty list.
func (b *Buffer) Snapshot() []model.Sample {
	out := make([]model.Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}
