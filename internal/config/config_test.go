package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, generator.Ethereum, cfg.NetworkValue())
	assert.Equal(t, ":8120", cfg.MetricsAddr())

	p := cfg.Pipeline()
	assert.Equal(t, 60, p.FPS)
	assert.Equal(t, 8, p.Workers)
	assert.Equal(t, generator.IdentifierLength, p.TargetLength)
	assert.Negative(t, p.Timeout)
	assert.Zero(t, p.MaxCandidates)

	b := cfg.Balance()
	assert.Empty(t, b.Endpoint)
	assert.Equal(t, DefaultLookupTimeout, b.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"bitcoin", func(c *Config) { c.Network = "btc" }, true},
		{"bloom", func(c *Config) { c.Strategy = "Bloom" }, true},
		{"targets without file", func(c *Config) { c.Addresses = ""; c.Targets = []string{"x"} }, true},
		{"port disabled", func(c *Config) { c.NoPort = true; c.Port = -5 }, true},
		{"unknown network", func(c *Config) { c.Network = "dogecoin" }, false},
		{"unknown strategy", func(c *Config) { c.Strategy = "linear" }, false},
		{"no targets", func(c *Config) { c.Addresses = "" }, false},
		{"no workers", func(c *Config) { c.Workers = 0 }, false},
		{"no poll", func(c *Config) { c.PollInterval = 0 }, false},
		{"negative rate", func(c *Config) { c.Rate = -1 }, false},
		{"bad port", func(c *Config) { c.Port = 70000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestMetricsAddrDisabled(t *testing.T) {
	cfg := Default()
	cfg.NoPort = true
	assert.Empty(t, cfg.MetricsAddr())

	cfg.Timeout = 5 * time.Second
	cfg.MaxGuesses = 10
	assert.Equal(t, 5*time.Second, cfg.Pipeline().Timeout)
	assert.EqualValues(t, 10, cfg.Pipeline().MaxCandidates)
}
