package sim

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateBatch(t *testing.T) {
	Convey("Given a generated batch", t, func() {
		now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		batch := generateBatch("session-1", "device-1", 100, 14, now)

		Convey("Then it carries the routing tags", func() {
			So(batch.SessionID, ShouldEqual, "session-1")
			So(batch.DeviceID, ShouldEqual, "device-1")
			So(len(batch.Samples), ShouldEqual, 14)
		})

		Convey("Then sequence numbers continue from the cursor", func() {
			So(batch.Samples[0].SequenceNumber, ShouldEqual, 100)
			So(batch.Samples[13].SequenceNumber, ShouldEqual, 113)
		})

		Convey("Then capture times parse and end at now", func() {
			for _, s := range batch.Samples {
				_, err := s.ParseCaptureTime()
				So(err, ShouldBeNil)
			}
			last, _ := batch.Samples[13].ParseCaptureTime()
			So(last, ShouldEqual, now.UnixMilli())

			first, _ := batch.Samples[0].ParseCaptureTime()
			So(first, ShouldEqual, now.UnixMilli()-13*sampleIntervalMS)
		})

		Convey("Then acceleration stays near gravity on Z", func() {
			for _, s := range batch.Samples {
				So(math.Abs(s.Acceleration.Z-gravityMS2), ShouldBeLessThan, noiseAmplitude+0.001)
			}
		})
	})
}

func TestWSURL(t *testing.T) {
	Convey("Given http and https base URLs", t, func() {
		So(wsURL("http://localhost:8090", "s1"), ShouldEqual, "ws://localhost:8090/sessions/s1/live")
		So(wsURL("https://relay.example", "s1"), ShouldEqual, "wss://relay.example/sessions/s1/live")
	})
}

func TestRandomFloat(t *testing.T) {
	Convey("Given the random source", t, func() {
		for i := 0; i < 100; i++ {
			v := randomFloat()
			So(v, ShouldBeGreaterThanOrEqualTo, 0.0)
			So(v, ShouldBeLessThan, 1.0)
		}
	})
}
