package wheel

import (
	"fmt"

	"github.com/eventcam/wheeltrack/internal/dvs"
)

// SliceEvents partitions an ordered event stream into consecutive batches
// of perSlice events. The final batch holds the remainder when the stream
// length is not a multiple of perSlice. The returned slices share the
// input's backing array and must be treated as read-only.
//
// An empty stream yields no batches. perSlice must be positive.
func SliceEvents(events []dvs.Event, perSlice int) ([][]dvs.Event, error) {
	if perSlice <= 0 {
		return nil, fmt.Errorf("events per slice must be positive, got %d", perSlice)
	}

	n := len(events)
	out := make([][]dvs.Event, 0, (n+perSlice-1)/perSlice)
	for start := 0; start < n; start += perSlice {
		end := start + perSlice
		if end > n {
			end = n
		}
		out = append(out, events[start:end:end])
	}
	return out, nil
}
