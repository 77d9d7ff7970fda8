package config

// Config represents ~/.fpgaprof/config.yaml.
type Config struct {
	LogLevel       string       `yaml:"log_level" env:"FPGAPROF_LOG_LEVEL"`
	Color          string       `yaml:"color" env:"FPGAPROF_COLOR"`                       // "auto", "always" or "never"
	MaxProfileSize int64        `yaml:"max_profile_size" env:"FPGAPROF_MAX_PROFILE_SIZE"` // bytes
	AllowSymlinks  bool         `yaml:"allow_symlinks" env:"FPGAPROF_ALLOW_SYMLINKS"`
	Report         ReportConfig `yaml:"report"`
}

// ReportConfig holds the defaults of the report command.
type ReportConfig struct {
	Expand    bool     `yaml:"expand" env:"FPGAPROF_EXPAND"`
	Kernels   []string `yaml:"kernels,omitempty" env:"FPGAPROF_KERNELS"`
	Where     string   `yaml:"where,omitempty" env:"FPGAPROF_WHERE"` // CEL expression over kernel fields
	Format    string   `yaml:"format" env:"FPGAPROF_FORMAT"`
	Transfers bool     `yaml:"transfers" env:"FPGAPROF_TRANSFERS"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTable = "table"
	FormatPprof = "pprof"
)
