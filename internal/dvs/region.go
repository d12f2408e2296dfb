package dvs

import "fmt"

// Region is a rectangular area of the sensor plane, given by its top-left
// origin and size in pixels.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// CenteredRegion builds a Region of the given size centered on (cx, cy).
// Odd sizes round the origin down, matching integer truncation of
// center - size/2.
func CenteredRegion(cx, cy, width, height int) Region {
	return Region{
		X:      cx - width/2,
		Y:      cy - height/2,
		Width:  width,
		Height: height,
	}
}

// Validate reports an error when either dimension is non-positive.
func (r Region) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("region must have positive dimensions, got %dx%d", r.Width, r.Height)
	}
	return nil
}

// Contains reports whether the sensor coordinate (x, y) falls inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Resolution returns the resolution of the cropped stream.
func (r Region) Resolution() Resolution {
	return Resolution{Width: r.Width, Height: r.Height}
}

// Crop filters events to those inside the region and re-bases their
// coordinates to the region origin, so the result is a valid stream for
// Region.Resolution(). Order is preserved; the input is not modified.
func Crop(events []Event, r Region) ([]Event, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if !r.Contains(e.X, e.Y) {
			continue
		}
		e.X -= r.X
		e.Y -= r.Y
		out = append(out, e)
	}
	return out, nil
}
