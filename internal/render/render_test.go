package render

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcam/wheeltrack/internal/dvs"
	"github.com/eventcam/wheeltrack/internal/wheel"
)

func sampleEvents() []dvs.Event {
	events := make([]dvs.Event, 0, 50)
	for i := 0; i < 50; i++ {
		events = append(events, dvs.Event{X: i * 2, Y: 100 - i})
	}
	return events
}

func TestSliceImage(t *testing.T) {
	t.Parallel()

	res := dvs.Resolution{Width: 200, Height: 200}

	t.Run("with detected line", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "image_slice_0.png")
		line := wheel.LineParameters{Rho: 50, Theta: math.Pi / 6}
		require.NoError(t, SliceImage(path, res, sampleEvents(), line, true))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("without line", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "image_slice_1.png")
		require.NoError(t, SliceImage(path, res, sampleEvents(), wheel.LineParameters{}, false))
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("invalid resolution", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.png")
		err := SliceImage(path, dvs.Resolution{}, nil, wheel.LineParameters{}, false)
		assert.Error(t, err)
	})
}

func TestFrameRenderer(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "frames")
	fr, err := NewFrameRenderer(dvs.Resolution{Width: 100, Height: 100}, dir)
	require.NoError(t, err)

	fr.ObserveSlice(3, sampleEvents(), wheel.LineParameters{Rho: 10, Theta: 0}, true)

	_, err = os.Stat(filepath.Join(dir, "image_slice_3.png"))
	assert.NoError(t, err)
}

func TestEvolutionPNG(t *testing.T) {
	t.Parallel()

	series := wheel.AngleSeries{
		{SliceIndex: 0, Degrees: 0, Defined: true},
		{SliceIndex: 1, Defined: false},
		{SliceIndex: 2, Degrees: 30, Defined: true},
		{SliceIndex: 3, Degrees: 45, Defined: true},
	}
	path := filepath.Join(t.TempDir(), "angles_evolution.png")
	require.NoError(t, EvolutionPNG(path, series))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAssembleGIF(t *testing.T) {
	t.Parallel()

	t.Run("orders frames numerically", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		res := dvs.Resolution{Width: 100, Height: 100}
		// Write frames out of lexical order: 2, 10 sorts before 2 lexically.
		for _, i := range []int{10, 2, 1} {
			path := filepath.Join(dir, "image_slice_"+strconv.Itoa(i)+".png")
			require.NoError(t, SliceImage(path, res, sampleEvents(), wheel.LineParameters{}, false))
		}

		out := filepath.Join(dir, "reference.gif")
		require.NoError(t, AssembleGIF(dir, out))

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("no frames is a no-op", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out := filepath.Join(dir, "empty.gif")
		require.NoError(t, AssembleGIF(dir, out))
		_, err := os.Stat(out)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFrameOrder(t *testing.T) {
	t.Parallel()

	assert.Less(t, frameOrder("image_slice_2.png"), frameOrder("image_slice_10.png"))
	assert.Less(t, frameOrder("image_slice_10.png"), frameOrder("cover.png"))
}
