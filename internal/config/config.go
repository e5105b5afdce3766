// Package config holds the settings of a hunt as parsed from the command
// line.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Amr-9/BalanceHunter/internal/pipeline"
	"github.com/Amr-9/BalanceHunter/pkg/balance"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultPort          = 8120
	DefaultAddressesFile = "data/addresses.yaml"
	DefaultLookupTimeout = 10 * time.Second
	DefaultFoundFile     = "found.txt"
)

// Config is the complete run configuration.
type Config struct {
	Network   string
	Strategy  string
	Addresses string   // target file
	Targets   []string // explicit targets, override Addresses

	// run bounds
	FPS        int
	Timeout    time.Duration
	MaxGuesses uint64

	Workers      int
	PollInterval time.Duration
	StallTimeout time.Duration

	// balance lookups
	RPC           string
	Rate          int
	LookupTimeout time.Duration

	FoundFile string
	FoundDB   string

	Port   int
	NoPort bool

	Quiet    bool
	LogLevel string
	LogJSON  bool
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Network:       "ethereum",
		Strategy:      string(targets.StrategyNearest),
		Addresses:     DefaultAddressesFile,
		FPS:           pipeline.DefaultFPS,
		Timeout:       -1,
		Workers:       pipeline.DefaultWorkers,
		PollInterval:  pipeline.DefaultPollInterval,
		StallTimeout:  pipeline.DefaultStallTimeout,
		LookupTimeout: DefaultLookupTimeout,
		FoundFile:     DefaultFoundFile,
		Port:          DefaultPort,
		LogLevel:      "info",
	}
}

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	if _, err := generator.ParseNetwork(c.Network); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !isStrategy(c.Strategy) {
		return fmt.Errorf("%w: unknown strategy %q (valid: %s)", ErrInvalid, c.Strategy, strings.Join(targets.Strategies(), ", "))
	}
	if len(c.Targets) == 0 && c.Addresses == "" {
		return fmt.Errorf("%w: no targets and no addresses file", ErrInvalid)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalid)
	}
	if c.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalid)
	}
	if !c.NoPort && (c.Port < 0 || c.Port > 65535) {
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Port)
	}
	return nil
}

func isStrategy(name string) bool {
	for _, s := range targets.Strategies() {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// NetworkValue returns the parsed network. Validate first.
func (c Config) NetworkValue() generator.Network {
	n, _ := generator.ParseNetwork(c.Network)
	return n
}

// Pipeline returns the run bounds for the pipeline.
func (c Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		Timeout:       c.Timeout,
		MaxCandidates: c.MaxGuesses,
		TargetLength:  generator.IdentifierLength,
		FPS:           c.FPS,
		Workers:       c.Workers,
		PollInterval:  c.PollInterval,
		StallTimeout:  c.StallTimeout,
	}
}

// Balance returns the lookup options.
func (c Config) Balance() balance.Options {
	return balance.Options{
		Endpoint: c.RPC,
		Rate:     c.Rate,
		Interval: time.Second,
		Timeout:  c.LookupTimeout,
	}
}

// MetricsAddr returns the listen address of the metrics server, or "" when
// it is disabled.
func (c Config) MetricsAddr() string {
	if c.NoPort {
		return ""
	}
	return fmt.Sprintf(":%d", c.Port)
}
