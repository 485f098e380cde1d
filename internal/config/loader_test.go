package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/caulf/live-telemetry/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.WindowMS, convey.ShouldEqual, 30_000)
				convey.So(cfg.ProducerToken, convey.ShouldEqual, "")
				convey.So(cfg.SendBufferSize, convey.ShouldEqual, 256)
				convey.So(cfg.MaxBatchSamples, convey.ShouldEqual, 1_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RELAY_ADDR", ":8080")
			_ = os.Setenv("RELAY_WINDOW_MS", "10000")
			_ = os.Setenv("RELAY_PRODUCER_TOKEN", "s3cret")
			_ = os.Setenv("RELAY_SEND_BUFFER_SIZE", "64")
			_ = os.Setenv("RELAY_MAX_BATCH_SAMPLES", "500")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WindowMS, convey.ShouldEqual, 10_000)
				convey.So(cfg.ProducerToken, convey.ShouldEqual, "s3cret")
				convey.So(cfg.SendBufferSize, convey.ShouldEqual, 64)
				convey.So(cfg.MaxBatchSamples, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
window_ms: 60000
send_buffer_size: 128
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RELAY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file and default the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WindowMS, convey.ShouldEqual, 60_000)
				convey.So(cfg.SendBufferSize, convey.ShouldEqual, 128)
				convey.So(cfg.MaxBatchSamples, convey.ShouldEqual, 1_000) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
window_ms: 60000
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RELAY_CONFIG", tmpFile)
			_ = os.Setenv("RELAY_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")     // Overridden by env
				convey.So(cfg.WindowMS, convey.ShouldEqual, 60_000) // From file
			})
		})

		convey.Convey("When loading config with an invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RELAY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			_ = os.Setenv("RELAY_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr", func() {
			_ = os.Setenv("RELAY_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive window", func() {
			_ = os.Setenv("RELAY_WINDOW_MS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "window_ms must be positive")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid numeric value", func() {
			_ = os.Setenv("RELAY_WINDOW_MS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RELAY_CONFIG",
		"RELAY_LOG_LEVEL",
		"RELAY_ADDR",
		"RELAY_WINDOW_MS",
		"RELAY_PRODUCER_TOKEN",
		"RELAY_SEND_BUFFER_SIZE",
		"RELAY_MAX_BATCH_SAMPLES",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "relay-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
