// Package config defines the application configuration and its loading.
//
// Configuration is layered, lowest to highest precedence: built-in
// defaults, an optional YAML file, then WHEELTRACK_-prefixed environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eventcam/wheeltrack/internal/dvs"
	"github.com/eventcam/wheeltrack/internal/wheel"
)

// ErrInvalidConfig tags validation failures so callers can errors.Is them.
var ErrInvalidConfig = errors.New("invalid config")

// CropConfig selects an optional centered region of the sensor plane to
// process instead of the full stream.
type CropConfig struct {
	Enabled bool `koanf:"enabled"`
	CenterX int  `koanf:"center_x"`
	CenterY int  `koanf:"center_y"`
	Width   int  `koanf:"width"`
	Height  int  `koanf:"height"`
}

// Region converts the crop settings to a dvs.Region.
func (c CropConfig) Region() dvs.Region {
	return dvs.CenteredRegion(c.CenterX, c.CenterY, c.Width, c.Height)
}

// Config contains process configuration.
type Config struct {
	// Input is the path of the event recording to process.
	Input string `koanf:"input"`

	// Width and Height override the recording's resolution directive when
	// set. Required if the recording carries no directive.
	Width  int `koanf:"width"`
	Height int `koanf:"height"`

	// Crop optionally restricts processing to a centered region.
	Crop CropConfig `koanf:"crop"`

	// OutputDir receives per-slice frames, the evolution chart and the
	// assembled animation.
	OutputDir string `koanf:"output_dir"`

	// CSVPath is where the angle series is exported; empty disables it.
	CSVPath string `koanf:"csv_path"`

	// DBPath is the SQLite database for run persistence; empty disables it.
	DBPath string `koanf:"db_path"`

	// RenderFrames enables per-slice scatter images; Animate additionally
	// assembles them into a GIF.
	RenderFrames bool `koanf:"render_frames"`
	Animate      bool `koanf:"animate"`

	// Listen is the debug HTTP address serving the chart and metrics;
	// empty disables the server.
	Listen string `koanf:"listen"`

	// Detection holds the pipeline tuning parameters.
	Detection wheel.Config `koanf:"detection"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir: "out",
		CSVPath:   "detected_angles.csv",
		Crop: CropConfig{
			CenterX: 173,
			CenterY: 130,
			Width:   100,
			Height:  100,
		},
		Detection: wheel.DefaultConfig(),
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// WHEELTRACK_-prefixed environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// WHEELTRACK_DB_PATH -> db_path; underscores are preserved to match
	// the koanf tags, so nested keys are file-only.
	envProvider := env.Provider("WHEELTRACK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "wheeltrack_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parts of the configuration that do not depend on the
// recording. The input resolution is validated once the recording is read.
func (c *Config) Validate() error {
	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Crop.Enabled {
		if err := c.Crop.Region().Validate(); err != nil {
			return fmt.Errorf("%w: crop: %v", ErrInvalidConfig, err)
		}
	}
	if c.Animate && !c.RenderFrames {
		return fmt.Errorf("%w: animate requires render_frames", ErrInvalidConfig)
	}
	return nil
}
