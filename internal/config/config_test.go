package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statref/internal"
	"statref/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STATREF_ALPHA", "STATREF_CONFIDENCE", "STATREF_OUTPUT",
		"STATREF_PRECISION", "STATREF_PARALLELISM", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

// TestLoadDefaults tests the values used with an empty environment
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Defaults.Alpha)
	assert.Equal(t, 0.95, cfg.Defaults.Confidence)
	assert.Equal(t, OutputText, cfg.Output.Format)
	assert.Equal(t, 4, cfg.Output.Precision)
	assert.Equal(t, 4, cfg.Engine.Parallelism)
	assert.Equal(t, internal.LogLevelInfo, cfg.LogLevel)
}

// TestLoadOverrides tests environment overrides
func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATREF_ALPHA", "0.01")
	t.Setenv("STATREF_CONFIDENCE", "0.99")
	t.Setenv("STATREF_OUTPUT", "YAML")
	t.Setenv("STATREF_PRECISION", "6")
	t.Setenv("STATREF_PARALLELISM", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Defaults.Alpha)
	assert.Equal(t, 0.99, cfg.Defaults.Confidence)
	assert.Equal(t, OutputYAML, cfg.Output.Format)
	assert.Equal(t, 6, cfg.Output.Precision)
	assert.Equal(t, 8, cfg.Engine.Parallelism)
	assert.Equal(t, internal.LogLevelDebug, cfg.LogLevel)
}

// TestLoadRejectsInvalidValues tests CONFIG_INVALID reporting
func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STATREF_ALPHA", "1.5"},
		{"STATREF_CONFIDENCE", "0"},
		{"STATREF_OUTPUT", "xml"},
		{"STATREF_PRECISION", "-1"},
		{"STATREF_PARALLELISM", "0"},
		{"LOG_LEVEL", "chatty"},
		{"STATREF_ALPHA", "abc"},
		{"STATREF_CONFIDENCE", "95%"},
		{"STATREF_PRECISION", "four"},
		{"STATREF_PARALLELISM", "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
