package window

// Option applies a configuration option to the Buffer.
type Option func(*Buffer)

// WithWindowMS sets the retention window in milliseconds.
func WithWindowMS(ms int64) Option {
	return func(b *Buffer) {
		if ms > 0 {
			b.windowMS = ms
		}
	}
}
