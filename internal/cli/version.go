package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/fpgaprof/internal/cli/helpers"
	"github.com/coral-mesh/fpgaprof/pkg/version"
)

var versionFormats = []helpers.OutputFormat{
	helpers.FormatText,
	helpers.FormatJSON,
	helpers.FormatYAML,
}

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, versionFormats); err != nil {
				return err
			}

			info := version.Get()
			w := cmd.OutOrStdout()
			if format != string(helpers.FormatText) {
				formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
				if err != nil {
					return err
				}
				return formatter.Format(info, w)
			}

			_, err := fmt.Fprintf(w, "fpgaprof version %s\nGit commit: %s\nBuild date: %s\nGo version: %s\nPlatform: %s\n",
				info.Version, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatText, versionFormats)

	return cmd
}
