// Package config implements the 'fpgaprof config' command family.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/fpgaprof/internal/cli/helpers"
	"github.com/coral-mesh/fpgaprof/internal/config"
	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fpgaprof configuration",
		Long: `Manage fpgaprof configuration.

Configuration Priority:
  1. Flags set on the command line (highest)
  2. FPGAPROF_* environment variables
  3. Config file (~/.fpgaprof/config.yaml)
  4. Built-in defaults

Environment Variables:
  FPGAPROF_CONFIG    Override config base directory (default: home directory)`,
	}

	cmd.AddCommand(newPathCmd())
	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}

func loader(cmd *cobra.Command) *config.Loader {
	dir, _ := cmd.Flags().GetString(helpers.FlagConfigDir)
	return config.NewLoader(dir)
}

// newPathCmd creates the 'config path' command.
func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), loader(cmd).ConfigPath())
			return err
		},
	}
}

// newViewCmd creates the 'config view' command.
func newViewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		Long: `Display the configuration after defaults, the config file and FPGAPROF_*
environment variables are merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			supported := []helpers.OutputFormat{helpers.FormatYAML, helpers.FormatJSON}
			if err := helpers.ValidateFormat(format, supported); err != nil {
				return err
			}

			// Flags are left out: -o here selects the view format.
			cfg, err := loader(cmd).Load(nil)
			if err != nil {
				return err
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			return formatter.Format(cfg, cmd.OutOrStdout())
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatYAML, []helpers.OutputFormat{
		helpers.FormatYAML,
		helpers.FormatJSON,
	})

	return cmd
}

// newInitCmd creates the 'config init' command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader(cmd)
			path := l.ConfigPath()

			if _, err := os.Stat(path); err == nil && !force {
				return apperrors.Config("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return apperrors.IO(err)
			}

			if err := l.Save(config.Default()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// newValidateCmd creates the 'config validate' command.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Load the configuration file and FPGAPROF_* environment variables and
report unknown keys or invalid values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader(cmd)
			if _, err := helpers.LoadConfig(cmd); err != nil {
				return fmt.Errorf("%s: %w", l.ConfigPath(), err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid (%s)\n", l.ConfigPath())
			return err
		},
	}
}
