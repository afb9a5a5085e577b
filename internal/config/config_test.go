package config_test

import (
	"testing"

	"github.com/enetx/tickfsm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 0, cfg.TableLimit)
	assert.True(t, cfg.Dedup)
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("TICKFSM_LOG_LEVEL", "debug")
	t.Setenv("TICKFSM_LOG_FORMAT", "json")
	t.Setenv("TICKFSM_TABLE_LIMIT", "16")
	t.Setenv("TICKFSM_DEDUP", "false")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, config.Config{LogLevel: "debug", LogFormat: "json", TableLimit: 16, Dedup: false}, cfg)
}

func TestParse_Invalid(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		t.Setenv("TICKFSM_TABLE_LIMIT", "many")

		_, err := config.Parse()
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("negative limit", func(t *testing.T) {
		t.Setenv("TICKFSM_TABLE_LIMIT", "-1")

		_, err := config.Parse()
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}
