package calibration

import (
	"fmt"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Report collects the output of every analysis.
type Report struct {
	Profile         string                 `json:"profile" yaml:"profile"`
	GeneratedAt     time.Time              `json:"generated_at" yaml:"generated_at"`
	Widths          *WidthReport           `json:"width_factors" yaml:"width_factors"`
	AverageResponse *ResponseReport        `json:"average_response" yaml:"average_response"`
	Irradiance      *IrradianceReport      `json:"irradiance_factors" yaml:"irradiance_factors"`
	ClearConversion *ClearConversionReport `json:"clear_conversion" yaml:"clear_conversion"`
	ChannelCounts   *ChannelCountsReport   `json:"channel_counts" yaml:"channel_counts"`
	Tristimulus     *TristimulusReport     `json:"led_tristimulus" yaml:"led_tristimulus"`
	Normalized      *NormalizeReport       `json:"normalized_responses" yaml:"normalized_responses"`
	Matrix          *MatrixReport          `json:"conversion_matrix" yaml:"conversion_matrix"`
	Gamut           *GamutReport           `json:"gamut" yaml:"gamut"`
	Lux             *LuxReport             `json:"lux_factors" yaml:"lux_factors"`
}

// RunAll executes every analysis in order and stops at the first failure.
func (p *Pipeline) RunAll() (*Report, error) {
	start := time.Now()
	report := &Report{Profile: p.profile.Name, GeneratedAt: start}

	steps := []struct {
		name string
		run  func() error
	}{
		{"width_factors", func() (err error) { report.Widths, err = p.WidthFactors(); return }},
		{"average_response", func() (err error) { report.AverageResponse, err = p.AverageResponse(); return }},
		{"irradiance_factors", func() (err error) { report.Irradiance, err = p.IrradianceFactors(); return }},
		{"clear_conversion", func() (err error) { report.ClearConversion, err = p.ClearConversionFactors(); return }},
		{"channel_counts", func() (err error) { report.ChannelCounts, err = p.ChannelCounts(); return }},
		{"led_tristimulus", func() (err error) { report.Tristimulus, err = p.LEDTristimulus(); return }},
		{"normalized_responses", func() (err error) { report.Normalized, err = p.NormalizeResponses(); return }},
		{"conversion_matrix", func() (err error) { report.Matrix, err = p.ConversionMatrix(); return }},
		{"gamut", func() (err error) { report.Gamut, err = p.Gamut(); return }},
		{"lux_factors", func() (err error) { report.Lux, err = p.LuxFactors(); return }},
	}

	for _, step := range steps {
		p.logger.Debug("Running analysis", logging.Fields{"analysis": step.name})
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("%s failed: %w", step.name, err)
		}
	}

	p.logger.Info("Calibration complete", logging.Fields{
		"analyses":    len(steps),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return report, nil
}
