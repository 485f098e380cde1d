package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the package-level recording helpers", t, func() {
		Convey("When recording ingest metrics", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordBatchIngested(14)
					RecordSamplesAppended(14)
					RecordSamplesDropped(1)
					RecordIngestRejected("missing_samples")
					RecordPrunedSamples(3)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording observer metrics", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordObserverConnect()
					RecordObserverDisconnect()
					RecordBroadcast()
					RecordBroadcastDrop()
					RecordSendError()
					RecordReplay()
				}, ShouldNotPanic)
			})
		})

		Convey("When updating gauges", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					UpdateSessionsActive(2)
					UpdateBufferedSamples(420)
					UpdateObserversConnected(3)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(42)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordHTTPRequest("ingest", "POST", "200")
					RecordHTTPRequestDuration("ingest", "POST", "200", 12.5)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		registry := GetRegistry()

		Convey("Then it should be usable for scraping", func() {
			So(registry, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeNil)
		})
	})
}
