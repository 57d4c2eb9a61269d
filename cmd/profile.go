package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/spectral-calibration/internal/app"
)

var profileFormat string

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print or validate calibration profiles",
	Long: `Print the calibration profile in use as YAML or JSON, or validate a
profile file.

Examples:
  # Write the built-in profile as a starting point
  tcs-cal profile > my-sensor.yaml

  # Show a custom profile merged over the built-in defaults
  tcs-cal --profile my-sensor.yaml profile --format json

  # Check a profile file
  tcs-cal profile validate my-sensor.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := app.LoadProfile(viper.GetString("profile_file"))
		if err != nil {
			return err
		}
		return app.WriteProfile(cmd.OutOrStdout(), *profile, profileFormat)
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a calibration profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ValidateProfile(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileFormat, "format", "yaml", "profile format (yaml, json)")
	profileCmd.AddCommand(profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}
