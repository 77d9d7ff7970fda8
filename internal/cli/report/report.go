package reportcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"

	"github.com/coral-mesh/fpgaprof/internal/cli/helpers"
	"github.com/coral-mesh/fpgaprof/internal/config"
	"github.com/coral-mesh/fpgaprof/internal/constants"
	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
	"github.com/coral-mesh/fpgaprof/internal/export"
	"github.com/coral-mesh/fpgaprof/internal/filter"
	"github.com/coral-mesh/fpgaprof/internal/profile"
	"github.com/coral-mesh/fpgaprof/internal/report"
	"github.com/coral-mesh/fpgaprof/internal/safe"
)

// StdinPath reads the profile from standard input.
const StdinPath = "-"

var supportedFormats = []helpers.OutputFormat{
	helpers.FormatText,
	helpers.FormatJSON,
	helpers.FormatCSV,
	helpers.FormatTable,
	helpers.FormatPprof,
}

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "report <profile.json>",
		Short: "Summarise an FPGA profiling report",
		Long: `Summarise the profiling report JSON written by the FPGA profiler.

The summary lists boards, run information and external memory bandwidth,
followed by occupancy, stall, bandwidth and efficiency statistics for every
global memory, local memory, channel and loop module instance, grouped by
the source location they were generated from.

Use "-" to read the profile from standard input.

Examples:
  # Summary of every kernel
  fpgaprof report profile.json

  # Break groups down per kernel and unroll instance
  fpgaprof report profile.json --expand

  # Only the vadd and scale kernels
  fpgaprof report profile.json -k vadd -k scale

  # Kernels that ran longer than 1000 cycles
  fpgaprof report profile.json --where 'end_time - start_time > 1000'

  # Machine readable output
  fpgaprof report profile.json -o csv > summary.csv

  # Module instances as a pprof profile
  fpgaprof report profile.json -o pprof --out fpga.pb.gz
  go tool pprof -sample_index=stall fpga.pb.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := helpers.LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger := helpers.NewLogger(cmd, cfg)

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := safe.CreateFile(outPath, constants.ReportFilePerm)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer apperrors.DeferClose(logger, f, "failed to close output file")

				if err := runReport(cmd, cfg, logger, args[0], f); err != nil {
					safe.RemoveFile(f, logger)
					return err
				}
				return nil
			}
			return runReport(cmd, cfg, logger, args[0], out)
		},
	}

	cmd.Flags().StringSliceP(config.FlagKernels, "k", nil, "Only include the named kernels (repeatable, comma separated)")
	cmd.Flags().BoolP(config.FlagExpand, "e", false, "Break source groups down by kernel and unroll instance")
	cmd.Flags().String(config.FlagWhere, "", "Only include kernels matching a CEL expression")
	cmd.Flags().Bool(config.FlagTransfers, false, "Append the memory transfer summary")
	cmd.Flags().Int64(config.FlagMaxSize, constants.DefaultMaxProfileSize, "Maximum profile size in bytes")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the report to a file instead of stdout")
	helpers.AddFormatFlag(cmd, &format, helpers.FormatText, supportedFormats)
	helpers.AddColorFlags(cmd)

	return cmd
}

func runReport(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger, path string, w io.Writer) error {
	if err := helpers.ValidateFormat(cfg.Report.Format, supportedFormats); err != nil {
		return err
	}

	data, err := readProfile(cmd, cfg, path)
	if err != nil {
		return fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	fingerprint := fmt.Sprintf("%016x", xxh3.Hash(data))
	logger.Debug().
		Str("path", path).
		Str("size", humanize.IBytes(uint64(len(data)))).
		Str("fingerprint", fingerprint).
		Msg("Read profile")

	p, err := profile.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	logger.Debug().
		Int("kernels", len(p.Kernels())).
		Int("boards", len(p.Boards())).
		Int("transfers", len(p.Transfers())).
		Msg("Parsed profile")

	f, err := kernelFilter(cfg.Report, logger)
	if err != nil {
		return err
	}
	selected := lo.Map(filter.Kernels(p, f), func(k *profile.Kernel, _ int) string { return k.Name })
	logger.Debug().Strs("kernels", selected).Msg("Selected kernels")
	if len(selected) == 0 && len(p.Kernels()) > 0 {
		logger.Warn().Msg("No kernel matches the selection")
	}

	if cfg.Report.Format == string(helpers.FormatPprof) {
		return writePprof(w, p, f, logger)
	}

	r := report.Build(p, report.Options{
		Filter:    f,
		Expand:    cfg.Report.Expand,
		Transfers: cfg.Report.Transfers,
	})
	r.Fingerprint = fingerprint
	for _, s := range r.Sections {
		logger.Debug().Str("section", s.Kind).Int("groups", len(s.Groups)).Msg("Built section")
	}

	return write(w, r, cfg)
}

// writePprof writes the module instances of the selected kernels as a
// gzipped pprof profile.
func writePprof(w io.Writer, p *profile.Profile, f filter.Filter, logger zerolog.Logger) error {
	prof, err := export.Pprof(p, f)
	if err != nil {
		return fmt.Errorf("failed to convert profile: %w", err)
	}
	logger.Debug().
		Int("samples", len(prof.Sample)).
		Int("locations", len(prof.Location)).
		Msg("Converted profile")

	if err := prof.Write(w); err != nil {
		return apperrors.IO(fmt.Errorf("failed to write pprof profile: %w", err))
	}
	return nil
}

func readProfile(cmd *cobra.Command, cfg *config.Config, path string) ([]byte, error) {
	opts := &safe.ReadOptions{MaxSize: cfg.MaxProfileSize, AllowSymlinks: cfg.AllowSymlinks}
	if path == StdinPath {
		return safe.ReadAll(cmd.InOrStdin(), opts)
	}
	return safe.ReadFile(path, opts)
}

// kernelFilter combines the name list and the expression of rc.
func kernelFilter(rc config.ReportConfig, logger zerolog.Logger) (filter.Filter, error) {
	expr, err := filter.Expr(rc.Where, logger)
	if err != nil {
		return nil, err
	}
	return filter.All(filter.Names(rc.Kernels...), expr), nil
}

func write(w io.Writer, r *report.Report, cfg *config.Config) error {
	format := helpers.OutputFormat(cfg.Report.Format)
	if format == helpers.FormatText {
		if err := report.WriteText(w, r, report.TextOptions{Color: helpers.UseColor(cfg.Color, w)}); err != nil {
			return apperrors.IO(fmt.Errorf("failed to write report: %w", err))
		}
		return nil
	}

	formatter, err := helpers.NewFormatter(format)
	if err != nil {
		return apperrors.Config("%v", err)
	}

	var data any = r
	if format != helpers.FormatJSON {
		data = report.Rows(r)
	}
	if err := formatter.Format(data, w); err != nil {
		return apperrors.IO(fmt.Errorf("failed to write %s report: %w", strings.ToUpper(string(format)), err))
	}
	return nil
}
