package config

import (
	"fmt"

	"github.com/RyanBlaney/pathscore/omics"
	"gopkg.in/yaml.v3"
)

// ErrorPolicy decides what a failing sample column does to the whole run
type ErrorPolicy string

const (
	// FailFast aborts the run on the first failing column
	FailFast ErrorPolicy = "fail_fast"

	// CollectErrors keeps scoring the remaining columns and reports the
	// failed ones alongside the result
	CollectErrors ErrorPolicy = "collect"
)

// Config configures a permutation scoring run
type Config struct {
	// Iterations is the number of permutation trials (k) per column
	Iterations int `json:"iterations" yaml:"iterations"`

	// ZScores selects z-score output; false selects signed empirical
	// quantiles in [-1, 1]
	ZScores bool `json:"z_scores" yaml:"z_scores"`

	// GetNullDist also returns every column's null distribution
	GetNullDist bool `json:"get_nulldist" yaml:"get_nulldist"`

	// Seed makes runs reproducible. Nil draws a fresh seed per run.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Workers is the number of columns scored concurrently
	Workers int `json:"workers" yaml:"workers"`

	// BatchSize bounds how many trials are multiplied at once
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	ErrorPolicy ErrorPolicy `json:"error_policy" yaml:"error_policy"`
}

// DefaultConfig returns the defaults: 10000 trials, z-scores, no
// null distributions, one worker, fail fast
func DefaultConfig() *Config {
	return &Config{
		Iterations:  10000,
		ZScores:     true,
		GetNullDist: false,
		Workers:     1,
		BatchSize:   1000,
		ErrorPolicy: FailFast,
	}
}

// WithSeed returns a copy of c with a fixed seed
func (c *Config) WithSeed(seed uint64) *Config {
	cp := *c
	cp.Seed = &seed
	return &cp
}

// Validate checks every parameter and wraps omics.ErrInvalidParameter
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", omics.ErrInvalidParameter)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", omics.ErrInvalidParameter, c.Iterations)
	}
	if c.ZScores && c.Iterations < 2 {
		return fmt.Errorf("%w: z-scores need at least 2 iterations, got %d", omics.ErrInvalidParameter, c.Iterations)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", omics.ErrInvalidParameter, c.Workers)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must not be negative, got %d", omics.ErrInvalidParameter, c.BatchSize)
	}
	switch c.ErrorPolicy {
	case FailFast, CollectErrors:
	default:
		return fmt.Errorf("%w: unknown error policy %q", omics.ErrInvalidParameter, c.ErrorPolicy)
	}
	return nil
}

// Parse reads a YAML document over DefaultConfig and validates the result.
// Keys absent from the document keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %v", omics.ErrInvalidParameter, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
