package wheel

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/eventcam/wheeltrack/internal/units"
)

// SliceAngle is one entry of an AngleSeries. Defined is false when no line
// cleared the vote threshold for the slice; Degrees is meaningless in that
// case and must not be coerced to zero by consumers.
type SliceAngle struct {
	SliceIndex int
	Degrees    float64
	Defined    bool
}

// AngleSeries is the ordered per-slice record of detected wheel angles.
// Entries are in slice order and the series length always equals the
// number of slices produced for the run.
type AngleSeries []SliceAngle

// AngleFromLine converts polar line parameters to the reported wheel angle
// in degrees.
func AngleFromLine(line LineParameters) float64 {
	return units.RadiansToDegrees(line.Theta)
}

// Defined returns how many entries carry a detected angle.
func (s AngleSeries) Defined() int {
	n := 0
	for _, a := range s {
		if a.Defined {
			n++
		}
	}
	return n
}

// SeriesSummary aggregates the defined angles of a series.
type SeriesSummary struct {
	Slices    int
	Defined   int
	MeanDeg   float64
	StdDevDeg float64
	MinDeg    float64
	MaxDeg    float64
}

// Summary computes aggregate statistics over the defined entries. With no
// defined entries the numeric fields are NaN.
func (s AngleSeries) Summary() SeriesSummary {
	angles := make([]float64, 0, len(s))
	for _, a := range s {
		if a.Defined {
			angles = append(angles, a.Degrees)
		}
	}

	out := SeriesSummary{Slices: len(s), Defined: len(angles)}
	if len(angles) == 0 {
		out.MeanDeg = math.NaN()
		out.StdDevDeg = math.NaN()
		out.MinDeg = math.NaN()
		out.MaxDeg = math.NaN()
		return out
	}

	out.MeanDeg, out.StdDevDeg = stat.MeanStdDev(angles, nil)
	if len(angles) == 1 {
		out.StdDevDeg = 0
	}
	out.MinDeg, out.MaxDeg = angles[0], angles[0]
	for _, v := range angles[1:] {
		out.MinDeg = math.Min(out.MinDeg, v)
		out.MaxDeg = math.Max(out.MaxDeg, v)
	}
	return out
}
