package configs

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()

	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", d.Verbose)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", d.LogLevel)
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", d.OutputFormat)
	}
	if !v.IsSet("data_dir") {
		v.Set("data_dir", d.DataDir)
	}

	// Chart defaults
	if !v.IsSet("plot.enabled") {
		v.Set("plot.enabled", d.Plot.Enabled)
	}
	if !v.IsSet("plot.dir") {
		v.Set("plot.dir", d.Plot.Dir)
	}
	if !v.IsSet("plot.format") {
		v.Set("plot.format", d.Plot.Format)
	}
	if !v.IsSet("plot.width_in") {
		v.Set("plot.width_in", d.Plot.WidthIn)
	}
	if !v.IsSet("plot.height_in") {
		v.Set("plot.height_in", d.Plot.HeightIn)
	}

	// Output defaults
	if !v.IsSet("output.precision") {
		v.Set("output.precision", d.Output.Precision)
	}
}

// DefaultDataDir is where reference tables are looked up when no data_dir is
// configured: ./data when it exists, otherwise the user data directory.
func DefaultDataDir() string {
	if info, err := os.Stat("data"); err == nil && info.IsDir() {
		return "data"
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tcs-cal")
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	return &Config{
		// Application settings defaults
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "text",
		DataDir:      DefaultDataDir(),

		// Chart defaults
		Plot: GetDefaultPlotConfig(),

		// Output configuration defaults
		Output: GetDefaultOutputConfig(),
	}
}

// GetDefaultPlotConfig returns default chart settings
func GetDefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Enabled:  false,
		Dir:      "plots",
		Format:   "png",
		WidthIn:  8,
		HeightIn: 6,
	}
}

// GetDefaultOutputConfig returns default output formatting settings
func GetDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Precision: 4,
	}
}
