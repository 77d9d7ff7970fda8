package cli

import (
	"github.com/spf13/cobra"

	configcmd "github.com/coral-mesh/fpgaprof/internal/cli/config"
	"github.com/coral-mesh/fpgaprof/internal/cli/helpers"
	reportcmd "github.com/coral-mesh/fpgaprof/internal/cli/report"
	"github.com/coral-mesh/fpgaprof/internal/config"
)

// NewRootCmd creates the fpgaprof command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fpgaprof",
		Short: "fpgaprof - summarise FPGA kernel profiling reports",
		Long: `Read the profiling report JSON written by the FPGA profiler and summarise
where kernels spend their time.

Statistics are aggregated per source location across kernels and compute
units: occupancy, stalls, memory bandwidth and efficiency, cache hit rate,
channel depth and loop occupancy, plus external memory bandwidth per port.

Configuration is read from ~/.fpgaprof/config.yaml (override the base
directory with --config or FPGAPROF_CONFIG), then FPGAPROF_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(config.FlagLogLevel, "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String(helpers.FlagConfigDir, "", "Configuration base directory (default: home directory)")

	rootCmd.AddCommand(reportcmd.NewReportCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(configcmd.NewConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
