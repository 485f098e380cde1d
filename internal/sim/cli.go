package sim

import (
	"fmt"
	"os"

	"github.com/caulf/live-telemetry/pkg/logger"
)

// SetupLogging initializes logging for the simulator CLI.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the device simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Telemetry Device Simulator
==========================

Simulates motion-sensing devices publishing telemetry batches into a relay
session, optionally attaching an observer to verify the replay and live
updates.

Usage:
  go run cmd/device-sim/main.go [options]

Options:
  -url string
        Base URL of the relay (default "http://localhost:8090")
  -session string
        Session ID to publish into (default: random UUID)
  -devices int
        Number of simulated devices (default 1)
  -duration duration
        How long to keep publishing (default 30s)
  -cadence duration
        Delay between batches per device (default 700ms)
  -samples int
        Samples per batch (default 14)
  -token string
        Producer bearer token (default: none)
  -timeout duration
        HTTP request timeout (default 10s)
  -observe
        Also attach a WebSocket observer to the session
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Publish one device into a fresh session for 30 seconds
  go run cmd/device-sim/main.go

  # Three devices into a shared session, with an observer attached
  go run cmd/device-sim/main.go -devices 3 -session demo -observe

  # Against a relay that requires a producer token
  go run cmd/device-sim/main.go -token s3cret -url http://relay:8090
`)
}
