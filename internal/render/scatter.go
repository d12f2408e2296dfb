// Package render draws per-slice diagnostic images and the angle evolution
// chart, and assembles slice frames into an animation.
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/eventcam/wheeltrack/internal/dvs"
	"github.com/eventcam/wheeltrack/internal/monitoring"
	"github.com/eventcam/wheeltrack/internal/wheel"
)

// lineExtent is how far the detected line is extended past its foot point
// when drawn, in pixels. Long enough to cross any supported sensor plane.
const lineExtent = 1000.0

// FrameRenderer writes one scatter-plus-line PNG per slice into OutputDir.
// It plugs into the pipeline as a slice observer.
type FrameRenderer struct {
	Resolution dvs.Resolution
	OutputDir  string
}

// NewFrameRenderer creates the output directory and returns a renderer.
func NewFrameRenderer(res dvs.Resolution, outputDir string) (*FrameRenderer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &FrameRenderer{Resolution: res, OutputDir: outputDir}, nil
}

// FramePath returns the file name used for a slice's image.
func (fr *FrameRenderer) FramePath(index int) string {
	return filepath.Join(fr.OutputDir, fmt.Sprintf("image_slice_%d.png", index))
}

// ObserveSlice renders one slice. Observer hooks cannot fail the pipeline,
// so render errors are logged and the run continues.
func (fr *FrameRenderer) ObserveSlice(index int, events []dvs.Event, line wheel.LineParameters, found bool) {
	if err := SliceImage(fr.FramePath(index), fr.Resolution, events, line, found); err != nil {
		monitoring.Logf("failed to render slice %d: %v", index, err)
	}
}

// SliceImage draws the slice's events as a scatter plot with the detected
// line overlaid, in image convention (origin top-left, y growing down), and
// saves it as a PNG at path.
func SliceImage(path string, res dvs.Resolution, events []dvs.Event, line wheel.LineParameters, found bool) error {
	if err := res.Validate(); err != nil {
		return fmt.Errorf("render slice: %w", err)
	}

	p := plot.New()
	p.X.Min, p.X.Max = 0, float64(res.Width)
	p.Y.Min, p.Y.Max = 0, float64(res.Height)

	// The plot's y axis grows up, the sensor's grows down; flip y so the
	// image matches the sensor orientation.
	flipY := func(y float64) float64 { return float64(res.Height) - y }

	pts := make(plotter.XYs, len(events))
	for i, e := range events {
		pts[i] = plotter.XY{X: float64(e.X), Y: flipY(float64(e.Y))}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)
	p.Legend.Add("events", scatter)

	if found {
		// Foot of the normal, extended both ways along the line direction.
		sin, cos := math.Sincos(line.Theta)
		x0, y0 := line.Rho*cos, line.Rho*sin
		ends := plotter.XYs{
			{X: x0 - lineExtent*sin, Y: flipY(y0 + lineExtent*cos)},
			{X: x0 + lineExtent*sin, Y: flipY(y0 - lineExtent*cos)},
		}
		detected, err := plotter.NewLine(ends)
		if err != nil {
			return fmt.Errorf("build line: %w", err)
		}
		detected.Color = color.RGBA{R: 255, A: 255}
		detected.Width = vg.Points(1)
		p.Add(detected)
		p.Legend.Add("detected line", detected)
	}

	p.Legend.Top = true

	w := vg.Inch * vg.Length(res.Width) / 100
	h := vg.Inch * vg.Length(res.Height) / 100
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save slice image: %w", err)
	}
	return nil
}
