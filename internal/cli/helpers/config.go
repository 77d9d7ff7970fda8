package helpers

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coral-mesh/fpgaprof/internal/config"
	"github.com/coral-mesh/fpgaprof/internal/logging"
)

// FlagConfigDir names the persistent flag overriding the config base directory.
const FlagConfigDir = "config"

// LoadConfig resolves the layered configuration of cmd: defaults, the config
// file, FPGAPROF_* variables and the flags set on the command line.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString(FlagConfigDir)
	return config.NewLoader(dir).Load(cmd.Flags())
}

// NewLogger builds the stderr logger of cmd, tagged with the command name.
func NewLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	out := cmd.ErrOrStderr()
	return logging.NewWithComponent(logging.Config{
		Level:   cfg.LogLevel,
		Pretty:  true,
		NoColor: !UseColor(cfg.Color, out),
		Output:  out,
	}, cmd.Name())
}
