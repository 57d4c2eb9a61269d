package calibration

import (
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// Primary is the chromaticity of one filtered channel's FWHM band.
type Primary struct {
	Channel      Channel                  `json:"channel" yaml:"channel"`
	Band         spectral.Band            `json:"band" yaml:"band"`
	XYZ          colorimetry.XYZ          `json:"xyz" yaml:"xyz"`
	Chromaticity colorimetry.Chromaticity `json:"chromaticity" yaml:"chromaticity"`
}

// GamutComparison relates the sensor gamut to one reference gamut.
type GamutComparison struct {
	Gamut        colorimetry.Gamut `json:"gamut" yaml:"gamut"`
	Area         float64           `json:"area" yaml:"area"`
	RelativeArea float64           `json:"relative_area" yaml:"relative_area"`
	Coverage     float64           `json:"coverage" yaml:"coverage"`
}

// GamutReport is the sensor's colour gamut and its comparison to the
// reference gamuts.
type GamutReport struct {
	Primaries  []Primary         `json:"primaries" yaml:"primaries"`
	Sensor     colorimetry.Gamut `json:"sensor" yaml:"sensor"`
	SensorArea float64           `json:"sensor_area" yaml:"sensor_area"`
	References []GamutComparison `json:"references" yaml:"references"`

	// Locus is the spectral locus used for plotting.
	Locus []colorimetry.LocusPoint `json:"-" yaml:"-"`
}

// Gamut places each filtered channel on the CIE 1931 diagram by integrating
// the colour-matching functions across the channel's FWHM band, then
// compares the resulting triangle with the profile's reference gamuts.
func (p *Pipeline) Gamut() (*GamutReport, error) {
	curves, err := p.sensorCurves()
	if err != nil {
		return nil, err
	}
	cmf, err := p.colorMatchingFunctions()
	if err != nil {
		return nil, err
	}
	grid, err := p.profileGrid()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile grid: %w", err)
	}

	report := &GamutReport{Sensor: colorimetry.Gamut{Name: "Sensor"}}
	for _, ch := range ColorChannels {
		r, err := spectral.Resample(curves[ch], grid, spectral.WithEdge(spectral.NoData))
		if err != nil {
			return nil, fmt.Errorf("failed to resample %s channel: %w", ch, err)
		}
		band, err := spectral.HalfMaxBand(r)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		xyz, err := colorimetry.BandTristimulus(cmf, band)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		xy, err := xyz.Chromaticity()
		if err != nil {
			return nil, fmt.Errorf("%s channel band %s: %w", ch, band, err)
		}

		report.Primaries = append(report.Primaries, Primary{
			Channel:      ch,
			Band:         band,
			XYZ:          xyz,
			Chromaticity: xy,
		})
		switch ch {
		case Red:
			report.Sensor.R = xy
		case Green:
			report.Sensor.G = xy
		case Blue:
			report.Sensor.B = xy
		}
	}

	report.SensorArea = report.Sensor.Area()
	for _, ref := range p.profile.Gamuts {
		report.References = append(report.References, GamutComparison{
			Gamut:        ref,
			Area:         ref.Area(),
			RelativeArea: report.Sensor.RelativeArea(ref),
			Coverage:     report.Sensor.Coverage(ref),
		})
	}
	report.Locus = colorimetry.SpectralLocus(cmf)

	p.logger.Debug("Computed sensor gamut", logging.Fields{
		"sensor_area": report.SensorArea,
		"references":  len(report.References),
	})

	return report, nil
}
