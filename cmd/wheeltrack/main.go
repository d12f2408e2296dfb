// Command wheeltrack estimates the rotation angle of a wheel observed by a
// DVS event camera. It reads an event recording, detects the dominant line
// in consecutive event slices, and reports the angle per slice as CSV,
// charts, per-slice images and an optional SQLite record.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eventcam/wheeltrack/internal/chart"
	"github.com/eventcam/wheeltrack/internal/config"
	"github.com/eventcam/wheeltrack/internal/db"
	"github.com/eventcam/wheeltrack/internal/dvs"
	"github.com/eventcam/wheeltrack/internal/dvs/recording"
	"github.com/eventcam/wheeltrack/internal/export"
	"github.com/eventcam/wheeltrack/internal/monitoring"
	"github.com/eventcam/wheeltrack/internal/render"
	"github.com/eventcam/wheeltrack/internal/version"
	"github.com/eventcam/wheeltrack/internal/wheel"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	input      = flag.String("input", "", "Event recording to process")
	width      = flag.Int("width", 0, "Stream width, overrides the recording directive")
	height     = flag.Int("height", 0, "Stream height, overrides the recording directive")
	crop       = flag.Bool("crop", false, "Restrict processing to the configured centered region")
	outputDir  = flag.String("out", "", "Output directory for frames and charts")
	csvPath    = flag.String("csv", "", "Angle series CSV path, empty disables")
	dbPath     = flag.String("db", "", "SQLite database path, empty disables")
	renderPNGs = flag.Bool("render", false, "Render a scatter-plus-line PNG per slice")
	animate    = flag.Bool("animate", false, "Assemble rendered frames into a GIF")
	listen     = flag.String("listen", "", "Debug HTTP listen address, empty disables")

	perSlice  = flag.Int("events-per-slice", 0, "Events per slice, overrides config")
	threshold = flag.Int("threshold", 0, "Hough vote threshold, overrides config")
	workers   = flag.Int("workers", 0, "Concurrent slice detectors, overrides config")

	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("wheeltrack", version.String())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyFlags(cfg)

	if cfg.Input == "" {
		log.Fatal("an input recording is required (-input or config)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// applyFlags overrides config fields with any flag the user set explicitly.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "crop":
			cfg.Crop.Enabled = *crop
		case "out":
			cfg.OutputDir = *outputDir
		case "csv":
			cfg.CSVPath = *csvPath
		case "db":
			cfg.DBPath = *dbPath
		case "render":
			cfg.RenderFrames = *renderPNGs
		case "animate":
			cfg.Animate = *animate
		case "listen":
			cfg.Listen = *listen
		case "events-per-slice":
			cfg.Detection.EventsPerSlice = *perSlice
		case "threshold":
			cfg.Detection.VoteThreshold = *threshold
		case "workers":
			cfg.Detection.Workers = *workers
		}
	})
}

func run(ctx context.Context, cfg *config.Config) error {
	rec, err := recording.ReadFile(cfg.Input)
	if err != nil {
		return err
	}

	res := rec.Resolution
	if cfg.Width > 0 && cfg.Height > 0 {
		res = dvs.Resolution{Width: cfg.Width, Height: cfg.Height}
	}
	if err := res.Validate(); err != nil {
		return fmt.Errorf("recording has no resolution directive and none was supplied: %w", err)
	}

	events := rec.Events
	info := dvs.Info(events)
	monitoring.Logf("loaded %s: %d events over %s at %s",
		cfg.Input, info.Count, time.Duration(info.DurationMicros)*time.Microsecond, res)

	if cfg.Crop.Enabled {
		region := cfg.Crop.Region()
		events, err = dvs.Crop(events, region)
		if err != nil {
			return err
		}
		res = region.Resolution()
		monitoring.Logf("cropped to %s at (%d,%d): %d events remain", res, region.X, region.Y, len(events))
	}

	pipeline, err := wheel.NewPipeline(res, cfg.Detection)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	pipeline.Metrics = monitoring.NewPipelineMetrics(registry)

	if cfg.RenderFrames {
		frames, err := render.NewFrameRenderer(res, framesDir(cfg))
		if err != nil {
			return err
		}
		pipeline.Observer = frames.ObserveSlice
	}

	series, err := pipeline.Run(ctx, events)
	if err != nil {
		return err
	}

	summary := series.Summary()
	if summary.Defined > 0 {
		monitoring.Logf("processed %d slices: %d with a line, mean angle %.1f deg (min %.1f, max %.1f)",
			summary.Slices, summary.Defined, summary.MeanDeg, summary.MinDeg, summary.MaxDeg)
	} else {
		monitoring.Logf("processed %d slices: no lines detected", summary.Slices)
	}

	if err := writeOutputs(cfg, res, series, len(events)); err != nil {
		return err
	}

	if cfg.Listen != "" {
		return serve(ctx, cfg, registry, series)
	}
	return nil
}

func framesDir(cfg *config.Config) string {
	base := filepath.Base(cfg.Input)
	name := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(cfg.OutputDir, "images_"+name)
}

func writeOutputs(cfg *config.Config, res dvs.Resolution, series wheel.AngleSeries, eventCount int) error {
	if cfg.CSVPath != "" {
		if err := export.SaveAngleSeries(cfg.CSVPath, series); err != nil {
			return err
		}
		monitoring.Logf("successfully saved the angle series to '%s'", cfg.CSVPath)
	}

	if cfg.DBPath != "" {
		database, err := db.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()

		runID, err := database.RecordRun(cfg.Input, res, cfg.Detection, eventCount)
		if err != nil {
			return err
		}
		if err := database.RecordAngles(runID, series); err != nil {
			return err
		}
		monitoring.Logf("recorded run %s in %s", runID, cfg.DBPath)
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		evolution := filepath.Join(cfg.OutputDir, "angles_evolution.png")
		if err := render.EvolutionPNG(evolution, series); err != nil {
			return err
		}
		chartPath := filepath.Join(cfg.OutputDir, "angles_evolution.html")
		if err := chart.SaveEvolution(chartPath, series, cfg.Input); err != nil {
			return err
		}
	}

	if cfg.Animate {
		gifPath := filepath.Join(framesDir(cfg), "reference.gif")
		if err := render.AssembleGIF(framesDir(cfg), gifPath); err != nil {
			return err
		}
		monitoring.Logf("assembled animation at '%s'", gifPath)
	}
	return nil
}

// serve exposes the evolution chart and the run metrics until ctx is done.
func serve(ctx context.Context, cfg *config.Config, registry *prometheus.Registry, series wheel.AngleSeries) error {
	mux := http.NewServeMux()
	mux.Handle("/", chart.Handler(series, cfg.Input))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: cfg.Listen, Handler: mux}
	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()
	monitoring.Logf("serving chart and metrics on %s", cfg.Listen)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
