package sim

import "time"

// Config holds configuration for the device simulator.
type Config struct {
	BaseURL         string        // Base URL of the relay
	SessionID       string        // Session to publish into (random when empty)
	Devices         int           // Number of simulated devices
	Duration        time.Duration // How long to keep publishing
	Cadence         time.Duration // Delay between batches per device
	SamplesPerBatch int           // Samples carried by each batch
	Token           string        // Producer bearer token, empty when auth is off
	Timeout         time.Duration // HTTP request timeout
	Observe         bool          // Also attach a WebSocket observer
	Verbose         bool          // Enable verbose logging
}

// Stats holds simulator run statistics.
type Stats struct {
	BatchesSubmitted int64
	BatchesFailed    int64
	SamplesSubmitted int64
	ReplaySamples    int
	UpdatesObserved  int64
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
