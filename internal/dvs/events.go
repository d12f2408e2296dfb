// Package dvs defines the event-camera domain types shared across the
// pipeline: events, sensor resolution, stream summaries, and region crops.
//
// A dynamic vision sensor reports individual pixel brightness changes
// rather than frames. The pipeline only needs the pixel coordinate of each
// event once temporal order is established; timestamp and polarity are
// carried for stream summaries and region filtering but are ignored by the
// detection stages.
package dvs

import "fmt"

// Event is a single brightness-change report from the sensor.
// TimestampMicros is the sensor timestamp in microseconds.
type Event struct {
	X               int
	Y               int
	TimestampMicros int64
	Polarity        bool
}

// Resolution is the pixel dimensions of the event stream. It is fixed for
// the duration of a run and supplied once by the recording loader.
type Resolution struct {
	Width  int
	Height int
}

// Validate reports an error when either dimension is non-positive.
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("resolution must have positive dimensions, got %dx%d", r.Width, r.Height)
	}
	return nil
}

// Contains reports whether (x, y) lies inside [0,Width)x[0,Height).
func (r Resolution) Contains(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// StreamInfo summarises an event stream: count, first and last timestamps
// and total duration in microseconds.
type StreamInfo struct {
	Count                int
	FirstTimestampMicros int64
	LastTimestampMicros  int64
	DurationMicros       int64
}

// Info computes a StreamInfo for the given events. Events must be in
// temporal order; an empty stream yields a zero StreamInfo.
func Info(events []Event) StreamInfo {
	if len(events) == 0 {
		return StreamInfo{}
	}
	first := events[0].TimestampMicros
	last := events[len(events)-1].TimestampMicros
	return StreamInfo{
		Count:                len(events),
		FirstTimestampMicros: first,
		LastTimestampMicros:  last,
		DurationMicros:       last - first,
	}
}
