package config_test

import (
	"context"
	"testing"

	"github.com/caulf/live-telemetry/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigNew(t *testing.T) {
	convey.Convey("Given a fresh config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should carry the documented defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
			convey.So(cfg.WindowMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.ProducerToken, convey.ShouldBeEmpty)
			convey.So(cfg.SendBufferSize, convey.ShouldEqual, 256)
			convey.So(cfg.MaxBatchSamples, convey.ShouldEqual, 1_000)
		})
	})
}
