package config

import (
	"github.com/coral-mesh/fpgaprof/internal/constants"
)

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		LogLevel:       constants.DefaultLogLevel,
		Color:          constants.DefaultColorMode,
		MaxProfileSize: constants.DefaultMaxProfileSize,
		Report: ReportConfig{
			Format: constants.DefaultOutputFormat,
		},
	}
}
