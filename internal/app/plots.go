package app

import (
	"image/color"
	"path/filepath"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"gonum.org/v1/plot/vg"

	"github.com/RyanBlaney/spectral-calibration/internal/calibration"
	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/plotting"
)

var luxSeries = []struct {
	key    string
	name   string
	color  color.Color
	dashed bool
}{
	{key: "V(λ)", name: "V(λ)", color: color.Black, dashed: true},
	{key: string(calibration.Red), name: "Red", color: color.RGBA{R: 220, G: 40, B: 40, A: 255}},
	{key: string(calibration.Green), name: "Green", color: color.RGBA{R: 40, G: 160, B: 60, A: 255}},
	{key: string(calibration.Blue), name: "Blue", color: color.RGBA{R: 40, G: 80, B: 220, A: 255}},
}

// writePlots renders the charts belonging to result, if it has any.
func (app *CalibrationApp) writePlots(result any) error {
	switch r := result.(type) {
	case *calibration.GamutReport:
		return app.plotGamut(r)
	case *calibration.LuxReport:
		return app.plotLux(r)
	case *calibration.Report:
		if err := app.plotGamut(r.Gamut); err != nil {
			return err
		}
		return app.plotLux(r.Lux)
	}
	return nil
}

func (app *CalibrationApp) plotSize() plotting.Size {
	return plotting.Size{
		Width:  vg.Length(app.config.Plot.WidthIn) * vg.Inch,
		Height: vg.Length(app.config.Plot.HeightIn) * vg.Inch,
	}
}

func (app *CalibrationApp) plotPath(name string) string {
	return filepath.Join(app.config.Plot.Dir, name+"."+app.config.Plot.Format)
}

func (app *CalibrationApp) plotGamut(r *calibration.GamutReport) error {
	refs := make([]colorimetry.Gamut, len(r.References))
	for i, ref := range r.References {
		refs[i] = ref.Gamut
	}

	path := app.plotPath("chromaticity")
	if err := plotting.Chromaticity(r.Locus, r.Sensor, refs, path, app.plotSize()); err != nil {
		return err
	}

	app.logger.Info("Chromaticity diagram written", logging.Fields{"path": path})
	return nil
}

func (app *CalibrationApp) plotLux(r *calibration.LuxReport) error {
	var series []plotting.Series
	for _, s := range luxSeries {
		values, ok := r.Curves[s.key]
		if !ok {
			continue
		}
		series = append(series, plotting.Series{
			Name:   s.name,
			Grid:   r.Grid,
			Values: values,
			Color:  s.color,
			Dashed: s.dashed,
		})
	}

	path := app.plotPath("lux_responses")
	if err := plotting.SpectralOverlay("Normalized Channel Response and V(λ)", "Normalized response", series, path, app.plotSize()); err != nil {
		return err
	}

	app.logger.Info("Spectral overlay written", logging.Fields{"path": path})
	return nil
}
