package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/eventcam/wheeltrack/internal/wheel"
)

// EvolutionPNG plots the detected angle over slice index and saves the
// chart as a PNG at path. Undefined slices leave gaps rather than plotting
// as zero.
func EvolutionPNG(path string, series wheel.AngleSeries) error {
	p := plot.New()
	p.Title.Text = "Evolution of the detected angles"
	p.X.Label.Text = "Time steps"
	p.Y.Label.Text = "Angle (degrees)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(series))
	for _, a := range series {
		if !a.Defined {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(a.SliceIndex), Y: a.Degrees})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build evolution line: %w", err)
	}
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save evolution chart: %w", err)
	}
	return nil
}
