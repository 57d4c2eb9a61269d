package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFile   string
	profileFile  string
	dataDir      string
	verbose      bool
	logLevel     string
	logFile      string
	outputFormat string
	outputFile   string
	plotDir      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tcs-cal",
	Short: "Spectral calibration toolkit for TCS34725 RGB colour sensors",
	Long: `Derive calibration constants for a TCS34725-class RGB colour sensor from
its published spectral responsivity and the CIE 1931 reference tables.

Every analysis runs on one calibration profile: the sensor export and CIE
files, the reference LED models and the published constants. The built-in
profile reproduces the datasheet calibration; pass --profile to use your own.

Key features:
- FWHM band detection on PCHIP-resampled responsivity curves
- Irradiance, clear-channel and average-response conversion factors
- LED simulation, tristimulus values and the RGB to XYZ matrix
- Sensor colour gamut against NTSC, sRGB, AdobeRGB, DCI-P3 and Rec. 2020
- Irradiance to lux conversion weighted by the photopic curve
- Text, JSON, YAML, CSV and table output with optional charts`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/tcs-cal/tcs-cal.yaml)")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", "",
		"calibration profile file, YAML or JSON (default is the built-in TCS34725 profile)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"directory holding the sensor and CIE tables (default is ./data)")

	// Output and logging flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to this file (reopened on SIGHUP)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"output format (text, json, yaml, csv, table)")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output-file", "",
		"write results to this file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&plotDir, "plot-dir", "",
		"write charts into this directory")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output_file", rootCmd.PersistentFlags().Lookup("output-file"))
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("profile_file", rootCmd.PersistentFlags().Lookup("profile"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory and /etc
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "tcs-cal"))
		viper.AddConfigPath("/etc/tcs-cal")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("tcs-cal")
		viper.SetConfigType("yaml")
	}

	// Environment variable support
	viper.SetEnvPrefix("TCS_CAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if configFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", configFile, err)
		os.Exit(1)
	}
}

// initializeConfig initializes configuration after flags are parsed
func initializeConfig(cmd *cobra.Command) error {
	// Bind all flags to viper
	return bindFlags(cmd, viper.GetViper())
}

// bindFlags binds each command-local flag to its associated viper
// configuration. Persistent flags are bound to their config keys in init.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		// Environment variable name
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		// Bind the flag to viper
		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}

		// Bind to environment variable
		if err := v.BindEnv(f.Name, "TCS_CAL_"+envVarSuffix); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
