package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/spectral-calibration/configs"
	"github.com/RyanBlaney/spectral-calibration/internal/app"
)

const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
)

// configTestCmd represents the config test command
var configTestCmd = &cobra.Command{
	Use:   "config-test",
	Short: "Test and display all configuration values",
	Long: `Test configuration loading and display all values to verify proper parsing.

This command loads the application configuration and the calibration profile
and displays their values in a structured format, so you can check that your
YAML files are being parsed correctly.

Examples:
  # Test with default config file
  tcs-cal config-test

  # Test with specific config file and profile
  tcs-cal --config /path/to/tcs-cal.yaml --profile bench.yaml config-test`,
	Args: cobra.NoArgs,
	RunE: runConfigTest,
}

func init() {
	rootCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	fmt.Println("TCS-CAL CONFIGURATION TEST")
	fmt.Println(strings.Repeat("=", 80))

	// Load configuration
	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)
	printKeyValue("Log File", config.LogFile)
	printKeyValue("Output Format", config.OutputFormat)
	printKeyValue("Output File", config.OutputFile)
	printKeyValue("Data Directory", config.DataDir)
	printKeyValue("Profile File", config.ProfileFile)

	printSection("PLOT CONFIGURATION")
	printKeyValue("Enabled", fmt.Sprintf("%t", config.Plot.Enabled))
	printKeyValue("Directory", config.Plot.Dir)
	printKeyValue("Format", config.Plot.Format)
	printKeyValue("Size", fmt.Sprintf("%g in x %g in", config.Plot.WidthIn, config.Plot.HeightIn))

	printSection("OUTPUT CONFIGURATION")
	printKeyValue("Precision", fmt.Sprintf("%d", config.Output.Precision))

	profile, err := app.LoadProfile(config.ProfileFile)
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid calibration profile: %w", err)
	}

	printSection("CALIBRATION PROFILE")
	printKeyValue("Name", profile.Name)
	printKeyValue("Grid", fmt.Sprintf("%g nm to %g nm, step %g nm", profile.Grid.Start, profile.Grid.Stop, profile.Grid.Step))
	printKeyValue("Derive Matrix", fmt.Sprintf("%t", profile.DeriveMatrix))

	printSubsection("Tables")
	printKeyValue("  Sensor Responsivity", profile.Sensor.File)
	printKeyValue("  CIE 1931 XYZ", profile.CIE.XYZFile)
	printKeyValue("  CIE Photopic", profile.CIE.PhotopicFile)

	printSubsection(fmt.Sprintf("Reference LEDs (%d)", len(profile.LEDs)))
	for _, led := range profile.LEDs {
		printKeyValue("  "+led.Name, fmt.Sprintf("%g nm ± %g nm, %g counts per µW/cm²",
			led.Center, led.HalfWidth, led.CountsPerMicrowatt))
	}

	printSubsection(fmt.Sprintf("Clear Conversion LEDs (%d)", len(profile.ClearConversionLEDs)))
	for _, led := range profile.ClearConversionLEDs {
		printKeyValue("  "+led.Name, fmt.Sprintf("%g nm ± %g nm, %g counts per µW/cm²",
			led.Center, led.HalfWidth, led.CountsPerMicrowatt))
	}

	printSubsection("Constants")
	c := profile.Constants
	printKeyValue("  Clear Conversion", fmt.Sprintf("%g", c.ClearConversion))
	printKeyValue("  Reference Gain / Time", fmt.Sprintf("%gx / %g ms", c.ReferenceGain, c.ReferenceIntegrationMs))
	printKeyValue("  Target Gain / Time", fmt.Sprintf("%gx / %g ms", c.TargetGain, c.TargetIntegrationMs))
	printKeyValue("  Irradiance per Lux", fmt.Sprintf("%g", c.IrradiancePerLux))

	printSubsection(fmt.Sprintf("Reference Gamuts (%d)", len(profile.Gamuts)))
	for _, g := range profile.Gamuts {
		printKeyValue("  "+g.Name, fmt.Sprintf("R %s  G %s  B %s", g.R, g.G, g.B))
	}

	fmt.Println()
	fmt.Println(ColorGreen + strings.Repeat("-", 80))
	fmt.Println("CONFIGURATION TEST COMPLETED SUCCESSFULLY")
	fmt.Printf("Config file: %s\n", getConfigFilePath())
	fmt.Println(strings.Repeat("=", 80) + ColorReset)

	return nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n", title)
	fmt.Println(strings.Repeat("-", len(title)))
}

func printSubsection(title string) {
	fmt.Printf("\n  %s\n", title)
}

func printKeyValue(key, value string) {
	if value == "" {
		fmt.Printf("%-35s\n", key)
	} else {
		fmt.Printf("%-35s %s\n", key+":", value)
	}
}

func getConfigFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return "(none, using defaults)"
}
