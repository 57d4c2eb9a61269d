package configs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/viper"
)

// OutputFormats lists the accepted values of output_format.
var OutputFormats = []string{"text", "json", "yaml", "csv", "table"}

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	LogFile      string `mapstructure:"log_file"`
	OutputFormat string `mapstructure:"output_format"`
	OutputFile   string `mapstructure:"output_file"`
	DataDir      string `mapstructure:"data_dir"`

	// Calibration profile file (YAML or JSON); empty uses the built-in profile
	ProfileFile string `mapstructure:"profile_file"`

	// Chart configuration
	Plot PlotConfig `mapstructure:"plot"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// PlotConfig contains chart settings
type PlotConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	Dir      string  `mapstructure:"dir"`
	Format   string  `mapstructure:"format"`
	WidthIn  float64 `mapstructure:"width_in"`
	HeightIn float64 `mapstructure:"height_in"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision int `mapstructure:"precision"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom decodes the configuration held by v, filling unset keys with
// defaults.
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	var errs []error

	if !slices.Contains(OutputFormats, config.OutputFormat) {
		errs = append(errs, fmt.Errorf("output format %q must be one of %v", config.OutputFormat, OutputFormats))
	}

	if config.Output.Precision < 0 {
		errs = append(errs, fmt.Errorf("output precision cannot be negative"))
	}

	if config.Plot.WidthIn <= 0 || config.Plot.HeightIn <= 0 {
		errs = append(errs, fmt.Errorf("plot width and height must be positive"))
	}

	if config.Plot.Format == "" {
		errs = append(errs, fmt.Errorf("plot format is required"))
	}

	return errors.Join(errs...)
}
