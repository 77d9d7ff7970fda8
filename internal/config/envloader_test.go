package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FPGAPROF_LOG_LEVEL", "debug")
	t.Setenv("FPGAPROF_MAX_PROFILE_SIZE", "1024")
	t.Setenv("FPGAPROF_ALLOW_SYMLINKS", "true")
	t.Setenv("FPGAPROF_KERNELS", " vadd, ,scale ")
	t.Setenv("FPGAPROF_WHERE", "autorun")

	cfg := Default()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(1024), cfg.MaxProfileSize)
	assert.True(t, cfg.AllowSymlinks)
	assert.Equal(t, []string{"vadd", "scale"}, cfg.Report.Kernels)
	assert.Equal(t, "autorun", cfg.Report.Where)

	// Untouched fields keep their defaults.
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, FormatText, cfg.Report.Format)
}

func TestLoadFromEnv_EmptyIsUnset(t *testing.T) {
	t.Setenv("FPGAPROF_FORMAT", "")

	cfg := Default()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Equal(t, FormatText, cfg.Report.Format)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{name: "integer", env: "FPGAPROF_MAX_PROFILE_SIZE", value: "big"},
		{name: "boolean", env: "FPGAPROF_EXPAND", value: "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			err := LoadFromEnv(Default())
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrConfig))
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestLoadFromEnv_NilAndNonStruct(t *testing.T) {
	var cfg *Config
	assert.NoError(t, LoadFromEnv(cfg))

	n := 3
	assert.NoError(t, LoadFromEnv(&n))
}
