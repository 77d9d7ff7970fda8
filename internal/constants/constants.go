// Package constants defines shared configuration constants and defaults.
package constants

// Paths.
const (
	// DefaultDir is the configuration directory under the base directory.
	DefaultDir = ".fpgaprof"

	// ConfigFile is the name of the configuration file inside DefaultDir.
	ConfigFile = "config.yaml"

	// ConfigDirEnv overrides the base directory (normally the user home).
	ConfigDirEnv = "FPGAPROF_CONFIG"

	// FallbackDir is used when no home directory can be resolved.
	FallbackDir = "/tmp/fpgaprof-fallback"
)

// Defaults.
const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultColorMode colours text output only when stdout is a terminal.
	DefaultColorMode = "auto"

	// DefaultOutputFormat is the default report format.
	DefaultOutputFormat = "text"

	// DefaultMaxProfileSize caps the size of a profile document (256 MiB).
	// Profiles of long runs carry one sample per interval per module
	// instance and grow quickly.
	DefaultMaxProfileSize int64 = 256 << 20
)

// File permissions.
const (
	// ConfigDirPerm is the permission used for the configuration directory.
	ConfigDirPerm = 0o700

	// ReportFilePerm is the permission used for report files written with --out.
	ReportFilePerm = 0o644
)
