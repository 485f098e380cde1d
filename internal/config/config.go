// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional file and environment on top.
// - All future functions must accept context.Context as the first parameter.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// WindowMS is the trailing retention window for buffered samples.
	WindowMS int64 `koanf:"window_ms"`

	// ProducerToken is the shared secret producers present on ingest.
	// Empty disables the check (local development only).
	ProducerToken string `koanf:"producer_token"`

	// SendBufferSize bounds each observer's outbound message queue.
	SendBufferSize int `koanf:"send_buffer_size"`

	// MaxBatchSamples caps the number of samples accepted per batch.
	MaxBatchSamples int `koanf:"max_batch_samples"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		WindowMS:        30_000,
		ProducerToken:   "",
		SendBufferSize:  256,
		MaxBatchSamples: 1_000,
	}
}
