package model

// Message type discriminators for observer-bound frames.
const (
	TypeReplay  = "replay"
	TypeSamples = "samples"
)

// ReplayMessage is sent once per subscription and carries the current
// window snapshot, oldest first, even when empty.
type ReplayMessage struct {
	Type     string   `json:"type"`
	WindowMS int64    `json:"windowMs"`
	Samples  []Sample `json:"samples"`
}

// LiveUpdateMessage is sent on each successful ingest and carries exactly
// the samples that ingest appended, never the whole buffer.
type LiveUpdateMessage struct {
	Type      string   `json:"type"`
	SessionID string   `json:"sessionId"`
	DeviceID  string   `json:"deviceId"`
	Samples   []Sample `json:"samples"`
}
