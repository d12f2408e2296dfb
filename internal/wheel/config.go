package wheel

import (
	"fmt"
	"math"
)

// Config holds the detection tuning parameters. The zero value is not
// usable; start from DefaultConfig and override fields as needed. The same
// struct serialises to JSON for run persistence and carries koanf tags for
// file/env configuration.
type Config struct {
	// EventsPerSlice is the fixed slice length k. The final slice of a
	// stream may be shorter.
	EventsPerSlice int `json:"events_per_slice" koanf:"events_per_slice"`

	// RhoStep is the accumulator resolution along rho, in pixels.
	RhoStep float64 `json:"rho_step" koanf:"rho_step"`

	// ThetaStep is the accumulator resolution along theta, in radians.
	ThetaStep float64 `json:"theta_step" koanf:"theta_step"`

	// VoteThreshold is the minimum accumulator count for a line to be
	// reported. Below it a slice yields no line.
	VoteThreshold int `json:"vote_threshold" koanf:"vote_threshold"`

	// Workers bounds concurrent slice detection. Zero or one means
	// sequential processing.
	Workers int `json:"workers" koanf:"workers"`
}

// DefaultConfig returns the canonical tuning defaults: 800 events per
// slice, 1-pixel rho bins, 1-degree theta bins, 10-vote threshold.
func DefaultConfig() Config {
	return Config{
		EventsPerSlice: 800,
		RhoStep:        1,
		ThetaStep:      math.Pi / 180,
		VoteThreshold:  10,
		Workers:        1,
	}
}

// Validate checks the configuration before any slicing begins. A failure
// here is fatal to the pipeline invocation.
func (c Config) Validate() error {
	if c.EventsPerSlice <= 0 {
		return fmt.Errorf("events_per_slice must be positive, got %d", c.EventsPerSlice)
	}
	if c.RhoStep <= 0 {
		return fmt.Errorf("rho_step must be positive, got %g", c.RhoStep)
	}
	if c.ThetaStep <= 0 || c.ThetaStep > math.Pi {
		return fmt.Errorf("theta_step must be in (0, pi], got %g", c.ThetaStep)
	}
	if c.VoteThreshold <= 0 {
		return fmt.Errorf("vote_threshold must be positive, got %d", c.VoteThreshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
