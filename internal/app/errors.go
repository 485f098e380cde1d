package relay

import "errors"

// Sentinel kinds for ingest validation failures. The HTTP layer maps these
// to 4xx responses; none of them mutate room state.
var (
	ErrNoSamples         = errors.New("batch contains no samples")
	ErrNoValidTimestamps = errors.New("no sample has a parsable capture time")
)
