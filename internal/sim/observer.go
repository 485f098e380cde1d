package sim

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/caulf/live-telemetry/internal/domain/model"
	"github.com/caulf/live-telemetry/pkg/logger"
)

// wsURL rewrites an http(s) base URL into its ws(s) equivalent.
func wsURL(baseURL, sessionID string) string {
	u := strings.Replace(baseURL, "http://", "ws://", 1)
	u = strings.Replace(u, "https://", "wss://", 1)
	return u + "/sessions/" + sessionID + "/live"
}

// observe attaches a WebSocket observer to the session and counts what it
// receives. The first message is expected to be the window replay; every
// later message is a live update. Returns when ctx is cancelled or the
// connection drops.
func observe(ctx context.Context, config *Config, stats *Stats) error {
	url := wsURL(config.BaseURL, config.SessionID)
	logger.Get().Info(ctx, "attaching observer", logger.String("url", url))

	sock, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	if resp != nil {
		drainAndClose(resp)
	}

	// Unblock ReadMessage when the run deadline expires.
	go func() {
		<-ctx.Done()
		_ = sock.Close()
	}()

	first := true
	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if first {
			first = false
			var replay model.ReplayMessage
			if err := json.Unmarshal(data, &replay); err == nil && replay.Type == model.TypeReplay {
				stats.ReplaySamples = len(replay.Samples)
				logger.Get().Info(ctx, "replay received",
					logger.Int64("windowMs", replay.WindowMS),
					logger.Int("samples", len(replay.Samples)))
				continue
			}
		}

		atomic.AddInt64(&stats.UpdatesObserved, 1)
		if config.Verbose {
			var update model.LiveUpdateMessage
			if err := json.Unmarshal(data, &update); err == nil {
				logger.Get().Debug(ctx, "live update",
					logger.String("deviceId", update.DeviceID),
					logger.Int("samples", len(update.Samples)))
			}
		}
	}
}
