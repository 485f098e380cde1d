// Package model contains the telemetry wire shapes passed between layers.
package model

import "time"

// Vector3 is a three-axis float reading.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sample represents a single sensor reading as produced by a device.
// CaptureTimeUTC stays in its ISO-8601 wire form; EpochMS carries the parsed
// epoch-millisecond value and never leaves the process.
type Sample struct {
	CaptureTimeUTC  string  `json:"captureTimeUtc"`
	SequenceNumber  int64   `json:"sequenceNumber"`
	Acceleration    Vector3 `json:"acceleration"`    // m/s²
	AngularVelocity Vector3 `json:"angularVelocity"` // rad/s

	EpochMS int64 `json:"-"`
}

// ParseCaptureTime resolves the sample's capture time to epoch milliseconds.
func (s Sample) ParseCaptureTime() (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, s.CaptureTimeUTC)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// Batch is one producer transmission: a group of samples for one session.
type Batch struct {
	SessionID string   `json:"sessionId"`
	DeviceID  string   `json:"deviceId"`
	Samples   []Sample `json:"samples"`
}
