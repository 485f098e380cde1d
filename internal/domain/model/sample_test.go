package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/caulf/live-telemetry/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSampleParseCaptureTime(t *testing.T) {
	convey.Convey("Given a sample with a UTC capture time", t, func() {
		s := model.Sample{CaptureTimeUTC: "2026-08-25T12:00:00.250Z"}

		convey.Convey("Then it should parse to epoch milliseconds", func() {
			ms, err := s.ParseCaptureTime()
			convey.So(err, convey.ShouldBeNil)
			convey.So(ms, convey.ShouldEqual, int64(1787659200250))
		})
	})

	convey.Convey("Given a capture time with a zone offset", t, func() {
		utc := model.Sample{CaptureTimeUTC: "2026-08-25T12:00:00Z"}
		offset := model.Sample{CaptureTimeUTC: "2026-08-25T14:00:00+02:00"}

		convey.Convey("Then both should resolve to the same instant", func() {
			a, err := utc.ParseCaptureTime()
			convey.So(err, convey.ShouldBeNil)
			b, err := offset.ParseCaptureTime()
			convey.So(err, convey.ShouldBeNil)
			convey.So(a, convey.ShouldEqual, b)
		})
	})

	convey.Convey("Given a capture time without fractional seconds", t, func() {
		s := model.Sample{CaptureTimeUTC: "2026-08-25T12:00:00Z"}

		convey.Convey("Then it should still parse", func() {
			_, err := s.ParseCaptureTime()
			convey.So(err, convey.ShouldBeNil)
		})
	})

	convey.Convey("Given unparsable capture times", t, func() {
		for _, raw := range []string{"", "not-a-time", "2026-08-25", "1787997600250"} {
			s := model.Sample{CaptureTimeUTC: raw}

			convey.Convey("Then "+raw+" should fail", func() {
				_, err := s.ParseCaptureTime()
				convey.So(err, convey.ShouldNotBeNil)
			})
		}
	})
}

func TestSampleJSON(t *testing.T) {
	convey.Convey("Given a sample on the wire", t, func() {
		raw := `{
			"captureTimeUtc": "2026-08-25T12:00:00Z",
			"sequenceNumber": 42,
			"acceleration": {"x": 0.1, "y": -0.2, "z": 9.8},
			"angularVelocity": {"x": 0, "y": 0.5, "z": 0}
		}`

		convey.Convey("When decoding it", func() {
			var s model.Sample
			err := json.Unmarshal([]byte(raw), &s)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then all fields should round out", func() {
				convey.So(s.CaptureTimeUTC, convey.ShouldEqual, "2026-08-25T12:00:00Z")
				convey.So(s.SequenceNumber, convey.ShouldEqual, 42)
				convey.So(s.Acceleration.Z, convey.ShouldEqual, 9.8)
				convey.So(s.AngularVelocity.Y, convey.ShouldEqual, 0.5)
			})
		})
	})

	convey.Convey("Given a sample with a parsed epoch", t, func() {
		s := model.Sample{CaptureTimeUTC: "2026-08-25T12:00:00Z", EpochMS: 1787659200000}

		convey.Convey("Then the epoch should never leak onto the wire", func() {
			data, err := json.Marshal(s)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldNotContainSubstring, "EpochMS")
			convey.So(string(data), convey.ShouldNotContainSubstring, "1787659200000")
		})
	})
}

func TestMessageShapes(t *testing.T) {
	convey.Convey("Given a replay message with an empty window", t, func() {
		m := model.ReplayMessage{Type: model.TypeReplay, WindowMS: 30_000, Samples: []model.Sample{}}

		convey.Convey("Then samples should serialize as an empty list, not null", func() {
			data, err := json.Marshal(m)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"samples":[]`)
			convey.So(string(data), convey.ShouldContainSubstring, `"type":"replay"`)
			convey.So(string(data), convey.ShouldContainSubstring, `"windowMs":30000`)
		})
	})

	convey.Convey("Given a live update message", t, func() {
		m := model.LiveUpdateMessage{
			Type:      model.TypeSamples,
			SessionID: "session-1",
			DeviceID:  "device-1",
			Samples:   []model.Sample{{CaptureTimeUTC: "2026-08-25T12:00:00Z"}},
		}

		convey.Convey("Then it should carry its routing tags", func() {
			data, err := json.Marshal(m)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"type":"samples"`)
			convey.So(string(data), convey.ShouldContainSubstring, `"sessionId":"session-1"`)
			convey.So(string(data), convey.ShouldContainSubstring, `"deviceId":"device-1"`)
		})
	})
}
