package sim

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/caulf/live-telemetry/internal/domain/model"
)

// Motion model constants. The simulated device rests roughly flat and
// wobbles, so acceleration stays near gravity on Z with a sinusoid on X/Y.
const (
	gravityMS2       = 9.81
	wobbleAmplitude  = 1.5
	wobbleHz         = 0.8
	spinAmplitude    = 0.6
	noiseAmplitude   = 0.25
	randomDivisor    = 1_000_000
	sampleIntervalMS = 50
)

// randomFloat returns a random float64 in [0.0, 1.0) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomDivisor))
	return float64(n.Int64()) / float64(randomDivisor)
}

// noise returns a small random perturbation centered on zero.
func noise() float64 {
	return (randomFloat()*2 - 1) * noiseAmplitude
}

// generateBatch produces one batch of IMU samples for a device. Capture
// times step backwards from now so the newest sample carries the current
// time, matching how a device flushes its local buffer.
func generateBatch(sessionID, deviceID string, nextSeq int64, n int, now time.Time) model.Batch {
	samples := make([]model.Sample, 0, n)
	for i := 0; i < n; i++ {
		captured := now.Add(-time.Duration(n-1-i) * sampleIntervalMS * time.Millisecond)
		phase := 2 * math.Pi * wobbleHz * float64(captured.UnixMilli()) / 1000

		samples = append(samples, model.Sample{
			CaptureTimeUTC: captured.UTC().Format(time.RFC3339Nano),
			SequenceNumber: nextSeq + int64(i),
			Acceleration: model.Vector3{
				X: wobbleAmplitude*math.Sin(phase) + noise(),
				Y: wobbleAmplitude*math.Cos(phase) + noise(),
				Z: gravityMS2 + noise(),
			},
			AngularVelocity: model.Vector3{
				X: spinAmplitude*math.Cos(phase) + noise(),
				Y: noise(),
				Z: spinAmplitude*math.Sin(phase) + noise(),
			},
		})
	}

	return model.Batch{
		SessionID: sessionID,
		DeviceID:  deviceID,
		Samples:   samples,
	}
}
