package config

import (
	"slices"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

var (
	validLogLevels = []string{"trace", "debug", "info", "warn", "error"}
	validColors    = []string{ColorAuto, ColorAlways, ColorNever}
	validFormats   = []string{FormatText, FormatJSON, FormatCSV, FormatTable, FormatPprof}
)

// Validate checks the enumerated settings and limits of the config.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return apperrors.Config("invalid log level %q (valid: %v)", c.LogLevel, validLogLevels)
	}
	if !slices.Contains(validColors, c.Color) {
		return apperrors.Config("invalid color mode %q (valid: %v)", c.Color, validColors)
	}
	if c.MaxProfileSize <= 0 {
		return apperrors.Config("max_profile_size must be positive, got %d", c.MaxProfileSize)
	}
	return c.Report.Validate()
}

// Validate checks the report settings.
func (r *ReportConfig) Validate() error {
	if !slices.Contains(validFormats, r.Format) {
		return apperrors.Config("unknown output format %q (valid: %v)", r.Format, validFormats)
	}
	return nil
}
