package config

import (
	"github.com/spf13/pflag"
)

// Flag names bound to configuration fields.
const (
	FlagLogLevel  = "log-level"
	FlagColor     = "color"
	FlagNoColor   = "no-color"
	FlagMaxSize   = "max-size"
	FlagExpand    = "expand"
	FlagKernels   = "kernels"
	FlagWhere     = "where"
	FlagOutput    = "output"
	FlagTransfers = "transfers"
)

var flagSetters = []struct {
	name string
	set  func(c *Config, fs *pflag.FlagSet) error
}{
	{FlagLogLevel, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.LogLevel, err = fs.GetString(FlagLogLevel)
		return
	}},
	{FlagColor, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.Color, err = fs.GetString(FlagColor)
		return
	}},
	// --no-color wins over --color.
	{FlagNoColor, func(c *Config, fs *pflag.FlagSet) error {
		off, err := fs.GetBool(FlagNoColor)
		if off {
			c.Color = ColorNever
		}
		return err
	}},
	{FlagMaxSize, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.MaxProfileSize, err = fs.GetInt64(FlagMaxSize)
		return
	}},
	{FlagExpand, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.Report.Expand, err = fs.GetBool(FlagExpand)
		return
	}},
	{FlagKernels, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.Report.Kernels, err = fs.GetStringSlice(FlagKernels)
		return
	}},
	{FlagWhere, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.Report.Where, err = fs.GetString(FlagWhere)
		return
	}},
	{FlagOutput, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.Report.Format, err = fs.GetString(FlagOutput)
		return
	}},
	{FlagTransfers, func(c *Config, fs *pflag.FlagSet) (err error) {
		c.Report.Transfers, err = fs.GetBool(FlagTransfers)
		return
	}},
}

// ApplyFlags copies the flags of fs that were set on the command line into
// cfg. Flags that fs does not define or that kept their default are ignored.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	for _, s := range flagSetters {
		if fs.Lookup(s.name) == nil || !fs.Changed(s.name) {
			continue
		}
		if err := s.set(cfg, fs); err != nil {
			return err
		}
	}
	return nil
}
