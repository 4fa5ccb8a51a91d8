package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntime_Defaults(t *testing.T) {
	cfg, err := LoadRuntime()
	require.NoError(t, err)

	assert.Equal(t, "configs", cfg.ConfigDir)
	assert.Equal(t, "character", cfg.Character)
	assert.Equal(t, "demo", cfg.Stage)
	assert.Equal(t, 60, cfg.TickRate)
	assert.True(t, cfg.Watch)
}

func TestLoadRuntime_Overrides(t *testing.T) {
	t.Setenv("KINECORE_STAGE", "caves")
	t.Setenv("KINECORE_WATCH", "false")
	t.Setenv("KINECORE_TICK_RATE", "120")

	cfg, err := LoadRuntime()
	require.NoError(t, err)

	assert.Equal(t, "caves", cfg.Stage)
	assert.False(t, cfg.Watch)
	assert.Equal(t, 120, cfg.TickRate)
}

func TestLoadRuntime_Errors(t *testing.T) {
	t.Setenv("KINECORE_TICK_RATE", "fast")
	_, err := LoadRuntime()
	assert.Error(t, err)

	t.Setenv("KINECORE_TICK_RATE", "0")
	_, err = LoadRuntime()
	assert.ErrorContains(t, err, "KINECORE_TICK_RATE")
}
