package config

import (
	"testing"

	"github.com/RyanBlaney/pathscore/omics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10000, cfg.Iterations)
	assert.True(t, cfg.ZScores)
	assert.False(t, cfg.GetNullDist)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, FailFast, cfg.ErrorPolicy)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
iterations: 500
z_scores: false
seed: 1234
workers: 4
error_policy: collect
`))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Iterations)
	assert.False(t, cfg.ZScores)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(1234), *cfg.Seed)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, CollectErrors, cfg.ErrorPolicy)
	assert.Equal(t, 1000, cfg.BatchSize)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero iterations", "iterations: 0"},
		{"negative iterations", "iterations: -3"},
		{"z-scores with one trial", "iterations: 1\nz_scores: true"},
		{"no workers", "workers: 0"},
		{"negative batch", "batch_size: -1"},
		{"unknown policy", "error_policy: retry"},
		{"malformed yaml", "iterations: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, omics.ErrInvalidParameter)
		})
	}
}

func TestParse_SingleTrialQuantileMode(t *testing.T) {
	cfg, err := Parse([]byte("iterations: 1\nz_scores: false"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Iterations)
}

func TestWithSeed_Copies(t *testing.T) {
	base := DefaultConfig()
	seeded := base.WithSeed(7)

	assert.Nil(t, base.Seed)
	require.NotNil(t, seeded.Seed)
	assert.Equal(t, uint64(7), *seeded.Seed)
}
