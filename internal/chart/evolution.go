// Package chart renders the angle evolution as an interactive HTML chart
// using go-echarts, and serves it over HTTP for quick inspection.
package chart

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/eventcam/wheeltrack/internal/wheel"
)

// EvolutionLine builds the angle-over-time line chart. Undefined slices
// become explicit gaps in the series so they are never rendered as zero.
func EvolutionLine(series wheel.AngleSeries, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Wheel Angle Evolution", Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Evolution of the detected angles", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time steps"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Angle (degrees)"}),
	)

	indexes := make([]string, len(series))
	points := make([]opts.LineData, len(series))
	for i, a := range series {
		indexes[i] = strconv.Itoa(a.SliceIndex)
		if a.Defined {
			points[i] = opts.LineData{Value: a.Degrees}
		} else {
			points[i] = opts.LineData{Value: "-"}
		}
	}

	line.SetXAxis(indexes)
	line.AddSeries("angle", points)
	return line
}

// RenderEvolution writes the chart HTML to w.
func RenderEvolution(w io.Writer, series wheel.AngleSeries, subtitle string) error {
	if err := EvolutionLine(series, subtitle).Render(w); err != nil {
		return fmt.Errorf("render evolution chart: %w", err)
	}
	return nil
}

// SaveEvolution writes the chart HTML to a file at path.
func SaveEvolution(path string, series wheel.AngleSeries, subtitle string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := RenderEvolution(f, series, subtitle); err != nil {
		return err
	}
	return f.Close()
}

// Handler serves the chart for a finished run.
func Handler(series wheel.AngleSeries, subtitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RenderEvolution(w, series, subtitle); err != nil {
			http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		}
	}
}
