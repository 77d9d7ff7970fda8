// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/coral-mesh/fpgaprof/internal/constants"
	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

// Loader handles loading and saving the configuration file.
type Loader struct {
	baseDir string
}

// NewLoader creates a new config loader.
// The base directory is resolved in this order:
//  1. dir, when not empty (the --config flag).
//  2. FPGAPROF_CONFIG environment variable.
//  3. User home directory (~/).
//  4. /tmp/fpgaprof-fallback (environments without a home dir).
//
// The fallback never holds a config file, so Load still returns defaults with
// environment and flag overrides applied.
func NewLoader(dir string) *Loader {
	if dir != "" {
		return &Loader{baseDir: dir}
	}
	if baseDir := os.Getenv(constants.ConfigDirEnv); baseDir != "" {
		return &Loader{baseDir: baseDir}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return &Loader{baseDir: homeDir}
	}
	return &Loader{baseDir: constants.FallbackDir}
}

// ConfigPath returns the path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.baseDir, constants.DefaultDir, constants.ConfigFile)
}

// Load loads the layered configuration. Flags of fs that were set explicitly
// override everything else; fs may be nil.
func (l *Loader) Load(fs *pflag.FlagSet) (*Config, error) {
	layered := NewLayeredLoader()
	if fs != nil {
		layered.WithFlags(fs)
	}
	return layered.Load(l.ConfigPath())
}

// Save writes cfg to the config file, creating its directory.
func (l *Loader) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := l.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return apperrors.IO(fmt.Errorf("failed to create config directory: %w", err))
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	//nolint:gosec // G306: config holds no secrets.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.IO(fmt.Errorf("failed to write config: %w", err))
	}
	return nil
}
