package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/spectral-calibration/internal/app"
)

// analysisHelp holds the long description of each analysis subcommand.
var analysisHelp = map[string]string{
	"widths": `Find the FWHM band of every channel on a 1 nm PCHIP resampling of the
sensor export, and report each filtered channel's width relative to the
clear channel.`,
	"avg-response": `Average each filtered channel's responsivity across its FWHM band and
convert it to counts per µW/cm² using the clear conversion and the
published width factors.`,
	"irradiance": `Integrate every channel across its own FWHM band, take the ratio to the
clear channel and scale the reference factor to the target gain and
integration time.`,
	"clear-factors": `Simulate the clear-conversion LEDs as Gaussians, integrate their overlap
with the clear channel and compare it with the measured counts.

The mean, median, spread and extremes of the factors are reported.`,
	"channel-counts": `Simulate each reference LED against all four channels and predict the
counts per µW/cm² each channel would read.`,
	"tristimulus": `Integrate each reference LED's emission against the CIE 1931 colour
matching functions and report XYZ and xy chromaticity.`,
	"normalize": `Divide each LED's measured channel responses by its clear response.`,
	"matrix": `Compute the RGB to XYZ matrix C = T·S⁻¹ from the tristimulus matrix T and
the sensor response matrix S. Both come from the profile unless the
profile sets derive_matrix, in which case they are simulated.`,
	"gamut": `Place each filtered channel on the CIE 1931 diagram from its FWHM band and
compare the sensor gamut with the reference display gamuts.

With --plot-dir a chromaticity diagram is written.`,
	"lux": `Weight each filtered channel's FWHM band by the photopic curve V(λ) and
split the irradiance to lux conversion across the channels.

With --plot-dir the normalized responses and V(λ) are charted.`,
	"run": `Run every analysis in order and report the combined results.`,
}

func init() {
	for _, a := range app.Analyses {
		rootCmd.AddCommand(newAnalysisCmd(a))
	}
}

func newAnalysisCmd(a app.Analysis) *cobra.Command {
	return &cobra.Command{
		Use:   a.Name,
		Short: a.Title,
		Long:  analysisHelp[a.Name],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calibrationApp, err := app.NewCalibrationApp(newAppContext(cmd))
			if err != nil {
				return err
			}
			return calibrationApp.Run(a.Name)
		},
	}
}

// newAppContext collects the flags that are not carried through viper.
func newAppContext(cmd *cobra.Command) *app.Context {
	return &app.Context{
		PlotDir: plotDir,
		Verbose: verbose,
		Out:     cmd.OutOrStdout(),
	}
}
