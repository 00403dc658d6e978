package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biscuit-labs/pagingsim/internal/config"
	"github.com/biscuit-labs/pagingsim/internal/vmconst"
)

func TestDefaultMatchesReferenceWorkload(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, vmconst.RAMFrames, cfg.Frames)
	assert.Equal(t, "fifo", cfg.Algorithm)
	assert.EqualValues(t, 1, cfg.OptSeed)
	assert.EqualValues(t, 1, cfg.UserSeed)
}

func TestLoadWithNoPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestValidateRejectsNonPositiveFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Frames = 0
	_, err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateRejectsOPTAsUserAlgorithm(t *testing.T) {
	cfg := config.Default()
	cfg.Algorithm = "opt"
	_, err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateRejectsUnknownAlgorithm(t *testing.T) {
	cfg := config.Default()
	cfg.Algorithm = "nonsense"
	_, err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateAcceptsSelectablePolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Algorithm = "mru"
	algo, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, vmconst.AlgoMRU, algo)
}
