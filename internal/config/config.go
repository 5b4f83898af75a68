// Package config provides configuration structures and defaults for the subghz tools
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"subghz-inspector/internal/logging"
	"subghz-inspector/internal/plot"
	"subghz-inspector/internal/sampler"
)

// EnvPrefix is the prefix of environment overrides, e.g. SUBGHZ_DISPLAY_POINT_LIMIT
const EnvPrefix = "SUBGHZ"

// Config represents the complete application configuration
type Config struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"` // Plot display choices
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`   // Trimmed file output
	Graph   GraphConfig   `mapstructure:"graph" yaml:"graph"`     // Terminal graph size
	Chart   ChartConfig   `mapstructure:"chart" yaml:"chart"`     // PNG chart size
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"` // Logging configuration
}

// DisplayConfig contains the initial plot display options
type DisplayConfig struct {
	ShowPositive bool   `mapstructure:"show_positive" yaml:"show_positive"` // Draw values >= 0
	ShowNegative bool   `mapstructure:"show_negative" yaml:"show_negative"` // Draw values < 0
	AutoScale    bool   `mapstructure:"auto_scale" yaml:"auto_scale"`       // Fit the value axis to the data
	PointLimit   string `mapstructure:"point_limit" yaml:"point_limit"`     // Max points per class, or "ALL"
}

// ExportConfig contains trimmed file output parameters
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"` // Directory for exported files
	Suffix    string `mapstructure:"suffix" yaml:"suffix"`         // Appended to the source base name
	LineWidth int    `mapstructure:"line_width" yaml:"line_width"` // Max RAW_Data token content per line
}

// GraphConfig contains the terminal graph dimensions in cells
type GraphConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// ChartConfig contains the PNG chart dimensions in pixels
type ChartConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// LoggingConfig contains logging configuration parameters
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // Log level (debug, info, warn, error)
	File  string `mapstructure:"file" yaml:"file"`   // Log file path, empty for stderr
}

// DefaultConfig returns a configuration with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ShowPositive: true,    // Both polarity classes visible
			ShowNegative: true,
			AutoScale:    true,    // Fit value axis to the data
			PointLimit:   "10000", // Points per class before decimation
		},
		Export: ExportConfig{
			OutputDir: ".",            // Next to where the tool runs
			Suffix:    "_trimmed.sub", // garage.sub -> garage_trimmed.sub
			LineWidth: 100,            // RAW_Data wrap width
		},
		Graph: GraphConfig{
			Width:  80,
			Height: 20,
		},
		Chart: ChartConfig{
			Width:  1200,
			Height: 500,
		},
		Logging: LoggingConfig{
			Level: "info", // Info level logging
			File:  "",     // Log to stderr
		},
	}
}

// SetDefaults registers every default value with v so that env overrides
// resolve for keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("display.show_positive", d.Display.ShowPositive)
	v.SetDefault("display.show_negative", d.Display.ShowNegative)
	v.SetDefault("display.auto_scale", d.Display.AutoScale)
	v.SetDefault("display.point_limit", d.Display.PointLimit)
	v.SetDefault("export.output_dir", d.Export.OutputDir)
	v.SetDefault("export.suffix", d.Export.Suffix)
	v.SetDefault("export.line_width", d.Export.LineWidth)
	v.SetDefault("graph.width", d.Graph.Width)
	v.SetDefault("graph.height", d.Graph.Height)
	v.SetDefault("chart.width", d.Chart.Width)
	v.SetDefault("chart.height", d.Chart.Height)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
}

// Load reads cfgFile (if present) into v, applies SUBGHZ_ environment
// overrides and returns the validated configuration. A missing config file
// is not an error; a malformed one is.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		logging.Debugf("Config: using %s", v.ConfigFileUsed())
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the tools cannot work with
func (c *Config) Validate() error {
	if _, err := sampler.ParseLimit(c.Display.PointLimit); err != nil {
		return fmt.Errorf("invalid display.point_limit: %w", err)
	}
	if c.Export.LineWidth <= 0 {
		return fmt.Errorf("invalid export.line_width: %d (must be positive)", c.Export.LineWidth)
	}
	if c.Export.Suffix == "" {
		return fmt.Errorf("export.suffix must not be empty")
	}
	if c.Graph.Width < 10 || c.Graph.Height < 3 {
		return fmt.Errorf("invalid graph size %dx%d (minimum 10x3)", c.Graph.Width, c.Graph.Height)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("invalid chart size %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	return nil
}

// PlotOptions converts the display section into plot options
func (c *Config) PlotOptions() (plot.Options, error) {
	limit, err := sampler.ParseLimit(c.Display.PointLimit)
	if err != nil {
		return plot.Options{}, fmt.Errorf("invalid display.point_limit: %w", err)
	}
	return plot.Options{
		ShowPositive: c.Display.ShowPositive,
		ShowNegative: c.Display.ShowNegative,
		AutoScale:    c.Display.AutoScale,
		Limit:        limit,
	}, nil
}
