package wheel

import (
	"context"
	"fmt"
	"sync"

	"github.com/eventcam/wheeltrack/internal/dvs"
	"github.com/eventcam/wheeltrack/internal/monitoring"
)

// SliceObserver receives each slice's events and detection outcome, in
// slice order, after detection completes. Rendering collaborators hang off
// this hook; the pipeline itself does no I/O.
type SliceObserver func(index int, events []dvs.Event, line LineParameters, found bool)

// Pipeline bundles the per-run dependencies of the detection pipeline.
// Passing them through the constructor keeps wiring explicit and testing
// deterministic.
type Pipeline struct {
	Resolution dvs.Resolution
	Config     Config

	// Observer is optional; when set it is invoked once per slice in
	// ascending index order after all detection finishes.
	Observer SliceObserver

	// Metrics is optional; nil disables counting.
	Metrics *monitoring.PipelineMetrics

	// Logf is the diagnostic logger. Defaults to monitoring.Logf.
	Logf func(format string, v ...interface{})
}

// NewPipeline validates the resolution and configuration up front. A
// configuration failure here aborts the whole run; nothing is sliced.
func NewPipeline(res dvs.Resolution, cfg Config) (*Pipeline, error) {
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Pipeline{
		Resolution: res,
		Config:     cfg,
		Logf:       monitoring.Logf,
	}, nil
}

// sliceResult is the per-slice detection outcome before merging.
type sliceResult struct {
	line    LineParameters
	found   bool
	dropped int
}

// Run executes the pipeline over the whole event stream and returns the
// complete angle series, one entry per slice in slice order. An empty
// stream yields an empty series. Slices are detected independently; when
// Config.Workers exceeds one they run on a bounded worker pool and results
// are merged by slice index, so the observable output is identical to the
// sequential loop.
//
// A slice in which no line clears the vote threshold contributes an
// undefined entry and never aborts the run. Run only fails when ctx is
// cancelled between slices.
func (p *Pipeline) Run(ctx context.Context, events []dvs.Event) (AngleSeries, error) {
	slices, err := SliceEvents(events, p.Config.EventsPerSlice)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	results := make([]sliceResult, len(slices))
	if err := p.detectAll(ctx, slices, results); err != nil {
		return nil, err
	}

	series := make(AngleSeries, len(slices))
	for i, r := range results {
		entry := SliceAngle{SliceIndex: i}
		if r.found {
			entry.Degrees = AngleFromLine(r.line)
			entry.Defined = true
		}
		series[i] = entry

		p.Metrics.AddSlice(r.found)
		p.Metrics.AddDropped(r.dropped)
		if r.dropped > 0 && p.Logf != nil {
			p.Logf("slice %d: dropped %d out-of-bounds events", i, r.dropped)
		}
		if p.Observer != nil {
			p.Observer(i, slices[i], r.line, r.found)
		}
	}
	return series, nil
}

// detectAll fills results[i] for every slice, sequentially or on a worker
// pool. Each worker owns its slice's transient grid; no state is shared
// between slices.
func (p *Pipeline) detectAll(ctx context.Context, slices [][]dvs.Event, results []sliceResult) error {
	workers := p.Config.Workers
	if workers <= 1 || len(slices) <= 1 {
		for i, s := range slices {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.detectSlice(s)
		}
		return nil
	}
	if workers > len(slices) {
		workers = len(slices)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.detectSlice(slices[i])
			}
		}()
	}

	var cancelled error
feed:
	for i := range slices {
		select {
		case indexes <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()
	return cancelled
}

// detectSlice runs rasterization and line detection for one slice.
func (p *Pipeline) detectSlice(events []dvs.Event) sliceResult {
	grid, dropped, err := Rasterize(p.Resolution, events)
	if err != nil {
		// Resolution was validated in NewPipeline; treat a failure here as
		// a no-line slice rather than aborting the run.
		return sliceResult{dropped: dropped}
	}
	line, found := DetectLine(grid, p.Config)
	return sliceResult{line: line, found: found, dropped: dropped}
}
