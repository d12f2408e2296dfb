package monitoring

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics counts pipeline outcomes per run. All counters are
// optional: a nil *PipelineMetrics is safe to call.
type PipelineMetrics struct {
	SlicesProcessed prometheus.Counter
	LinesDetected   prometheus.Counter
	NoLineSlices    prometheus.Counter
	EventsDropped   prometheus.Counter
}

// NewPipelineMetrics creates and registers the pipeline counters on reg.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		SlicesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheeltrack_slices_processed_total",
			Help: "Number of event slices run through the detection pipeline.",
		}),
		LinesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheeltrack_lines_detected_total",
			Help: "Number of slices in which a dominant line was found.",
		}),
		NoLineSlices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheeltrack_no_line_slices_total",
			Help: "Number of slices in which no line cleared the vote threshold.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheeltrack_events_dropped_total",
			Help: "Number of events dropped for out-of-bounds coordinates.",
		}),
	}
	reg.MustRegister(m.SlicesProcessed, m.LinesDetected, m.NoLineSlices, m.EventsDropped)
	return m
}

// AddSlice records one processed slice and whether a line was found.
func (m *PipelineMetrics) AddSlice(found bool) {
	if m == nil {
		return
	}
	m.SlicesProcessed.Inc()
	if found {
		m.LinesDetected.Inc()
	} else {
		m.NoLineSlices.Inc()
	}
}

// AddDropped records events rejected during rasterization.
func (m *PipelineMetrics) AddDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EventsDropped.Add(float64(n))
}
