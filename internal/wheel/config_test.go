package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 800, cfg.EventsPerSlice)
	assert.Equal(t, 1.0, cfg.RhoStep)
	assert.InDelta(t, math.Pi/180, cfg.ThetaStep, 1e-15)
	assert.Equal(t, 10, cfg.VoteThreshold)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	mutate := func(f func(*Config)) Config {
		cfg := DefaultConfig()
		f(&cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero events per slice", mutate(func(c *Config) { c.EventsPerSlice = 0 }), "events_per_slice"},
		{"negative events per slice", mutate(func(c *Config) { c.EventsPerSlice = -1 }), "events_per_slice"},
		{"zero rho step", mutate(func(c *Config) { c.RhoStep = 0 }), "rho_step"},
		{"zero theta step", mutate(func(c *Config) { c.ThetaStep = 0 }), "theta_step"},
		{"theta step above pi", mutate(func(c *Config) { c.ThetaStep = 4 }), "theta_step"},
		{"zero threshold", mutate(func(c *Config) { c.VoteThreshold = 0 }), "vote_threshold"},
		{"negative workers", mutate(func(c *Config) { c.Workers = -2 }), "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
