package calibration

import (
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// unitlessResponse is ∫emission·response / ∫emission over the whole grid:
// the response the channel would report for the LED relative to a flat
// unit response.
func unitlessResponse(em, response *spectral.Resampled) (float64, error) {
	weighted, err := spectral.WeightedIntegral(em, response, em.Grid[0], em.Grid[len(em.Grid)-1])
	if err != nil {
		return 0, err
	}
	norm, err := spectral.IntegrateAll(em)
	if err != nil {
		return 0, err
	}
	if norm == 0 {
		return 0, fmt.Errorf("%w: emission integrates to zero on the sensor grid", spectral.ErrDivideByZero)
	}
	return weighted / norm, nil
}

// LEDFactor is the clear-channel conversion derived from one LED.
type LEDFactor struct {
	LED                string  `json:"led" yaml:"led"`
	UnitlessResponse   float64 `json:"unitless_response" yaml:"unitless_response"`
	CountsPerMicrowatt float64 `json:"counts_per_uw_cm2" yaml:"counts_per_uw_cm2"`
	Factor             float64 `json:"factor" yaml:"factor"`
}

// ClearConversionReport holds the per-LED clear conversion factors. The
// median of Stats is the general scaling factor.
type ClearConversionReport struct {
	LEDs  []LEDFactor `json:"leds" yaml:"leds"`
	Stats Stats       `json:"stats" yaml:"stats"`
}

// ClearConversionFactors simulates the profile's clear-conversion LEDs
// against the clear channel and divides the datasheet counts by the
// simulated unitless response.
func (p *Pipeline) ClearConversionFactors() (*ClearConversionReport, error) {
	curves, err := p.resampleSensor([]Channel{Clear})
	if err != nil {
		return nil, err
	}
	clearCurve := curves[Clear]

	report := &ClearConversionReport{}
	factors := make([]float64, 0, len(p.profile.ClearConversionLEDs))
	for _, led := range p.profile.ClearConversionLEDs {
		em := led.Emission().Sample(clearCurve.Grid, false)
		unitless, err := unitlessResponse(em, clearCurve)
		if err != nil {
			return nil, fmt.Errorf("%s LED: %w", led.Name, err)
		}
		if unitless == 0 {
			return nil, fmt.Errorf("%s LED: %w: clear channel does not see the LED", led.Name, spectral.ErrDivideByZero)
		}

		f := led.CountsPerMicrowatt / unitless
		factors = append(factors, f)
		report.LEDs = append(report.LEDs, LEDFactor{
			LED:                led.Name,
			UnitlessResponse:   unitless,
			CountsPerMicrowatt: led.CountsPerMicrowatt,
			Factor:             f,
		})
	}
	report.Stats = Summarize(factors)

	p.logger.Debug("Computed clear conversion factors", logging.Fields{
		"leds":   len(factors),
		"median": report.Stats.Median,
	})

	return report, nil
}

// LEDChannelCounts is the simulated response of all channels to one LED.
type LEDChannelCounts struct {
	LED      string        `json:"led" yaml:"led"`
	Unitless ChannelValues `json:"unitless" yaml:"unitless"`
	// Factor converts unitless response into counts/µW/cm²; it is fixed by
	// the clear channel's datasheet count.
	Factor float64       `json:"factor" yaml:"factor"`
	Counts ChannelValues `json:"counts_per_uw_cm2" yaml:"counts_per_uw_cm2"`
}

// ChannelCountsReport lists LEDChannelCounts for every datasheet LED.
type ChannelCountsReport struct {
	LEDs []LEDChannelCounts `json:"leds" yaml:"leds"`
}

// ChannelCounts simulates each datasheet LED on all four channels, fixes the
// scale from the clear channel's known count and reports the resulting
// counts/µW/cm² for every channel.
func (p *Pipeline) ChannelCounts() (*ChannelCountsReport, error) {
	curves, err := p.resampleSensor(AllChannels)
	if err != nil {
		return nil, err
	}
	grid := curves[Clear].Grid

	report := &ChannelCountsReport{}
	for _, led := range p.profile.LEDs {
		em := led.Emission().Sample(grid, false)

		entry := LEDChannelCounts{LED: led.Name}
		for _, ch := range AllChannels {
			u, err := unitlessResponse(em, curves[ch])
			if err != nil {
				return nil, fmt.Errorf("%s LED, %s channel: %w", led.Name, ch, err)
			}
			entry.Unitless.Set(ch, u)
		}
		if entry.Unitless.Clear == 0 {
			return nil, fmt.Errorf("%s LED: %w: clear channel does not see the LED", led.Name, spectral.ErrDivideByZero)
		}

		entry.Factor = led.CountsPerMicrowatt / entry.Unitless.Clear
		entry.Counts.Clear = led.CountsPerMicrowatt
		for _, ch := range ColorChannels {
			entry.Counts.Set(ch, entry.Unitless.Get(ch)*entry.Factor)
		}
		report.LEDs = append(report.LEDs, entry)
	}

	return report, nil
}

// LEDColor is the simulated CIE 1931 colour of one LED.
type LEDColor struct {
	LED          string                   `json:"led" yaml:"led"`
	XYZ          colorimetry.XYZ          `json:"xyz" yaml:"xyz"`
	Chromaticity colorimetry.Chromaticity `json:"chromaticity" yaml:"chromaticity"`
}

// TristimulusReport lists LEDColor for every datasheet LED.
type TristimulusReport struct {
	LEDs []LEDColor `json:"leds" yaml:"leds"`
}

// LEDTristimulus integrates each datasheet LED's area-normalized emission
// against the CIE colour-matching functions on the profile grid.
func (p *Pipeline) LEDTristimulus() (*TristimulusReport, error) {
	cmf, err := p.colorMatchingFunctions()
	if err != nil {
		return nil, err
	}
	grid, err := p.profileGrid()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile grid: %w", err)
	}
	sampled, err := cmf.Resample(grid,
		spectral.WithMethod(spectral.Linear),
		spectral.WithEdge(spectral.ZeroFill))
	if err != nil {
		return nil, err
	}

	lo, hi := grid.Bounds()
	report := &TristimulusReport{}
	for _, led := range p.profile.LEDs {
		em := led.Emission().Sample(grid, true)
		xyz, err := colorimetry.Tristimulus(em, sampled, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("%s LED: %w", led.Name, err)
		}
		xy, err := xyz.Chromaticity()
		if err != nil {
			return nil, fmt.Errorf("%s LED: %w", led.Name, err)
		}
		report.LEDs = append(report.LEDs, LEDColor{LED: led.Name, XYZ: xyz, Chromaticity: xy})
	}

	return report, nil
}
