package sim

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/caulf/live-telemetry/pkg/logger"
)

// Run executes the complete simulation: health check, optional observer,
// then one publisher goroutine per simulated device until the configured
// duration elapses.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	if config.SessionID == "" {
		config.SessionID = uuid.New().String()
	}

	logger.Get().Info(ctx, "starting device simulation",
		logger.String("baseURL", config.BaseURL),
		logger.String("sessionId", config.SessionID),
		logger.Int("devices", config.Devices),
		logger.String("duration", config.Duration.String()),
		logger.String("cadence", config.Cadence.String()),
		logger.Int("samplesPerBatch", config.SamplesPerBatch),
		logger.Bool("observe", config.Observe))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, config.Duration)
	defer cancel()

	var observerErr error
	observerDone := make(chan struct{})
	if config.Observe {
		go func() {
			defer close(observerDone)
			observerErr = observe(runCtx, config, stats)
		}()
	} else {
		close(observerDone)
	}

	var wg sync.WaitGroup
	for i := 0; i < config.Devices; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publishDevice(runCtx, config, stats)
		}()
	}
	wg.Wait()
	cancel()
	<-observerDone

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if observerErr != nil {
		return fmt.Errorf("observer failed: %w", observerErr)
	}
	if atomic.LoadInt64(&stats.BatchesFailed) > 0 && atomic.LoadInt64(&stats.BatchesSubmitted) == 0 {
		return fmt.Errorf("all %d batches failed", stats.BatchesFailed)
	}

	logger.Get().Info(ctx, "simulation completed")
	return nil
}

// publishDevice posts batches for a single device at the configured cadence
// until ctx is cancelled.
func publishDevice(ctx context.Context, config *Config, stats *Stats) {
	deviceID := uuid.New().String()
	client := newHTTPClient(config.Timeout, config.Token)
	url := config.BaseURL + "/sessions/" + config.SessionID + "/telemetry"

	logger.Get().Info(ctx, "device publishing", logger.String("deviceId", deviceID))

	ticker := time.NewTicker(config.Cadence)
	defer ticker.Stop()

	var nextSeq int64
	for {
		batch := generateBatch(config.SessionID, deviceID, nextSeq, config.SamplesPerBatch, time.Now())
		nextSeq += int64(len(batch.Samples))

		resp, err := client.PostBatch(ctx, url, batch)
		switch {
		case err != nil:
			atomic.AddInt64(&stats.BatchesFailed, 1)
			if ctx.Err() == nil {
				logger.Get().Warn(ctx, "batch submission failed", logger.Error(err))
			}
		case resp.StatusCode != http.StatusOK:
			atomic.AddInt64(&stats.BatchesFailed, 1)
			logger.Get().Warn(ctx, "batch rejected",
				logger.String("deviceId", deviceID),
				logger.Int("status", resp.StatusCode))
			drainAndClose(resp)
		default:
			atomic.AddInt64(&stats.BatchesSubmitted, 1)
			atomic.AddInt64(&stats.SamplesSubmitted, int64(len(batch.Samples)))
			drainAndClose(resp)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// checkServiceHealth verifies the relay is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout, "")
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var batchesPerSecond float64
	if stats.Duration > 0 {
		batchesPerSecond = float64(stats.BatchesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int64("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int64("batchesFailed", stats.BatchesFailed),
		logger.Int64("samplesSubmitted", stats.SamplesSubmitted),
		logger.Int("replaySamples", stats.ReplaySamples),
		logger.Int64("updatesObserved", stats.UpdatesObserved),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("batchesPerSecond", batchesPerSecond))
}
