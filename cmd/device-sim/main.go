package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/caulf/live-telemetry/internal/sim"
)

// Default configuration constants.
const (
	defaultDevices  = 1
	defaultDuration = 30 * time.Second
	defaultCadence  = 700 * time.Millisecond
	defaultSamples  = 14
	defaultTimeout  = 10 * time.Second
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8090", "Base URL of the relay")
		sessionID = flag.String("session", "", "Session ID to publish into (default: random UUID)")
		devices   = flag.Int("devices", defaultDevices, "Number of simulated devices")
		duration  = flag.Duration("duration", defaultDuration, "How long to keep publishing")
		cadence   = flag.Duration("cadence", defaultCadence, "Delay between batches per device")
		samples   = flag.Int("samples", defaultSamples, "Samples per batch")
		token     = flag.String("token", "", "Producer bearer token")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		observe   = flag.Bool("observe", false, "Also attach a WebSocket observer")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sim.ShowHelp()
		return
	}

	if err := sim.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	config := &sim.Config{
		BaseURL:         *baseURL,
		SessionID:       *sessionID,
		Devices:         *devices,
		Duration:        *duration,
		Cadence:         *cadence,
		SamplesPerBatch: *samples,
		Token:           *token,
		Timeout:         *timeout,
		Observe:         *observe,
		Verbose:         *verbose,
	}

	if err := sim.Run(context.Background(), config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
