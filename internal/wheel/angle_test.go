package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleFromLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		theta    float64
		expected float64
	}{
		{"vertical line normal", 0, 0},
		{"thirty degrees", math.Pi / 6, 30},
		{"horizontal line normal", math.Pi / 2, 90},
		{"just under pi", math.Pi - math.Pi/180, 179},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleFromLine(LineParameters{Rho: 12, Theta: tt.theta})
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestAngleSeriesDefined(t *testing.T) {
	t.Parallel()

	series := AngleSeries{
		{SliceIndex: 0, Degrees: 10, Defined: true},
		{SliceIndex: 1, Defined: false},
		{SliceIndex: 2, Degrees: 20, Defined: true},
	}
	assert.Equal(t, 2, series.Defined())
}

func TestAngleSeriesSummary(t *testing.T) {
	t.Parallel()

	t.Run("mixed series", func(t *testing.T) {
		series := AngleSeries{
			{SliceIndex: 0, Degrees: 10, Defined: true},
			{SliceIndex: 1, Defined: false},
			{SliceIndex: 2, Degrees: 30, Defined: true},
			{SliceIndex: 3, Degrees: 20, Defined: true},
		}
		s := series.Summary()
		assert.Equal(t, 4, s.Slices)
		assert.Equal(t, 3, s.Defined)
		assert.InDelta(t, 20.0, s.MeanDeg, 1e-9)
		assert.InDelta(t, 10.0, s.StdDevDeg, 1e-9)
		assert.InDelta(t, 10.0, s.MinDeg, 1e-9)
		assert.InDelta(t, 30.0, s.MaxDeg, 1e-9)
	})

	t.Run("no defined entries", func(t *testing.T) {
		series := AngleSeries{{SliceIndex: 0}, {SliceIndex: 1}}
		s := series.Summary()
		assert.Equal(t, 2, s.Slices)
		assert.Zero(t, s.Defined)
		assert.True(t, math.IsNaN(s.MeanDeg))
		assert.True(t, math.IsNaN(s.MinDeg))
	})

	t.Run("single defined entry has zero spread", func(t *testing.T) {
		series := AngleSeries{{SliceIndex: 0, Degrees: 45, Defined: true}}
		s := series.Summary()
		assert.Equal(t, 1, s.Defined)
		assert.InDelta(t, 45.0, s.MeanDeg, 1e-9)
		assert.Zero(t, s.StdDevDeg)
	})
}
