package wheel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcam/wheeltrack/internal/dvs"
)

// endToEndEvents builds a 1600-event stream: slice 0 carries a vertical
// line (theta = 0) with ample votes, slice 1 holds 800 coincident events
// with no collinear structure beyond a single pixel.
func endToEndEvents() []dvs.Event {
	events := make([]dvs.Event, 0, 1600)
	for i := 0; i < 800; i++ {
		events = append(events, dvs.Event{X: 50, Y: i % 200})
	}
	for i := 0; i < 800; i++ {
		events = append(events, dvs.Event{X: 10, Y: 10})
	}
	return events
}

func TestPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	res := dvs.Resolution{Width: 200, Height: 200}
	p, err := NewPipeline(res, DefaultConfig())
	require.NoError(t, err)

	series, err := p.Run(context.Background(), endToEndEvents())
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.True(t, series[0].Defined)
	assert.InDelta(t, 0.0, series[0].Degrees, 1e-9)
	assert.Equal(t, 0, series[0].SliceIndex)
	assert.False(t, series[1].Defined)
	assert.Equal(t, 1, series[1].SliceIndex)
}

func TestPipelineEmptyStream(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(dvs.Resolution{Width: 100, Height: 100}, DefaultConfig())
	require.NoError(t, err)

	series, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestPipelineInvalidConfiguration(t *testing.T) {
	t.Parallel()

	t.Run("bad resolution", func(t *testing.T) {
		_, err := NewPipeline(dvs.Resolution{}, DefaultConfig())
		assert.Error(t, err)
	})

	t.Run("bad slice size", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EventsPerSlice = 0
		_, err := NewPipeline(dvs.Resolution{Width: 10, Height: 10}, cfg)
		assert.Error(t, err)
	})
}

func TestPipelineObserverOrder(t *testing.T) {
	t.Parallel()

	res := dvs.Resolution{Width: 200, Height: 200}
	cfg := DefaultConfig()
	cfg.EventsPerSlice = 100
	cfg.Workers = 4

	p, err := NewPipeline(res, cfg)
	require.NoError(t, err)

	var seen []int
	p.Observer = func(index int, events []dvs.Event, line LineParameters, found bool) {
		seen = append(seen, index)
		assert.Len(t, events, 100)
	}

	events := make([]dvs.Event, 0, 700)
	for i := 0; i < 700; i++ {
		events = append(events, dvs.Event{X: i % 200, Y: (i * 7) % 200})
	}
	_, err = p.Run(context.Background(), events)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, seen)
}

func TestPipelineParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	res := dvs.Resolution{Width: 200, Height: 200}
	events := endToEndEvents()

	run := func(workers int) AngleSeries {
		cfg := DefaultConfig()
		cfg.EventsPerSlice = 200
		cfg.Workers = workers
		p, err := NewPipeline(res, cfg)
		require.NoError(t, err)
		series, err := p.Run(context.Background(), events)
		require.NoError(t, err)
		return series
	}

	sequential := run(1)
	parallel := run(8)
	assert.Equal(t, sequential, parallel)
}

func TestPipelineCancelled(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(dvs.Resolution{Width: 200, Height: 200}, DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx, endToEndEvents())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineOutOfBoundsEventsIsolated(t *testing.T) {
	t.Parallel()

	// Out-of-bounds coordinates are dropped per slice; the remaining events
	// still detect and later slices are unaffected.
	res := dvs.Resolution{Width: 200, Height: 200}
	cfg := DefaultConfig()
	cfg.EventsPerSlice = 210

	events := make([]dvs.Event, 0, 210)
	for i := 0; i < 200; i++ {
		events = append(events, dvs.Event{X: 50, Y: i})
	}
	for i := 0; i < 10; i++ {
		events = append(events, dvs.Event{X: 500, Y: 500})
	}

	p, err := NewPipeline(res, cfg)
	require.NoError(t, err)
	p.Logf = func(string, ...interface{}) {}

	series, err := p.Run(context.Background(), events)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.True(t, series[0].Defined)
	assert.InDelta(t, 0.0, series[0].Degrees, 1e-9)
}
