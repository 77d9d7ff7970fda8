package helpers

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/fpgaprof/internal/config"
	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

// AddFormatFlag adds a standard --output/-o flag to a command.
func AddFormatFlag(cmd *cobra.Command, formatVar *string, defaultFormat OutputFormat, supportedFormats []OutputFormat) {
	formatNames := formatNames(supportedFormats)

	description := "Output format (" + strings.Join(formatNames, ", ") + ")"
	cmd.Flags().StringVarP(formatVar, config.FlagOutput, "o", string(defaultFormat), description)

	_ = cmd.RegisterFlagCompletionFunc(config.FlagOutput, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatNames, cobra.ShellCompDirectiveNoFileComp
	})
}

// AddColorFlags adds the --color and --no-color flags.
func AddColorFlags(cmd *cobra.Command) {
	modes := []string{config.ColorAuto, config.ColorAlways, config.ColorNever}
	cmd.Flags().String(config.FlagColor, config.ColorAuto, "Color text output ("+strings.Join(modes, ", ")+")")
	cmd.Flags().Bool(config.FlagNoColor, false, "Disable colors (same as --color never)")

	_ = cmd.RegisterFlagCompletionFunc(config.FlagColor, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
}

// ValidateFormat checks if the format is in the supported list.
func ValidateFormat(format string, supported []OutputFormat) error {
	for _, s := range supported {
		if format == string(s) {
			return nil
		}
	}
	return apperrors.Config("unsupported format %q, must be one of: %s",
		format, strings.Join(formatNames(supported), ", "))
}

func formatNames(formats []OutputFormat) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
