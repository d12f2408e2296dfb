package wheel

import (
	"fmt"

	"github.com/eventcam/wheeltrack/internal/dvs"
)

// OccupancyGrid is a binary image of one slice. Cell (x, y) is on iff at
// least one event in the slice mapped to that coordinate; duplicates
// collapse rather than accumulate.
type OccupancyGrid struct {
	Width  int
	Height int
	cells  []bool // row-major, y*Width+x
}

// NewOccupancyGrid allocates an all-zero grid for the given resolution.
func NewOccupancyGrid(res dvs.Resolution) (*OccupancyGrid, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &OccupancyGrid{
		Width:  res.Width,
		Height: res.Height,
		cells:  make([]bool, res.Width*res.Height),
	}, nil
}

// Set marks the cell at (x, y). Out-of-range coordinates are the caller's
// responsibility; Rasterize is the checked entry point.
func (g *OccupancyGrid) Set(x, y int) {
	g.cells[y*g.Width+x] = true
}

// At reports whether the cell at (x, y) is on.
func (g *OccupancyGrid) At(x, y int) bool {
	return g.cells[y*g.Width+x]
}

// CountOn returns the number of on cells.
func (g *OccupancyGrid) CountOn() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Rasterize builds the occupancy grid for one slice of events. Events whose
// coordinates fall outside the resolution are dropped rather than indexed;
// the dropped count is returned so callers can surface the discrepancy
// between declared resolution and actual coordinates.
func Rasterize(res dvs.Resolution, events []dvs.Event) (*OccupancyGrid, int, error) {
	grid, err := NewOccupancyGrid(res)
	if err != nil {
		return nil, 0, fmt.Errorf("rasterize: %w", err)
	}

	dropped := 0
	for _, e := range events {
		if !res.Contains(e.X, e.Y) {
			dropped++
			continue
		}
		grid.Set(e.X, e.Y)
	}
	return grid, dropped, nil
}
