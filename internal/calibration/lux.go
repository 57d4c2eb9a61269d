package calibration

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// LuxChannel is one filtered channel's share of the lux conversion.
type LuxChannel struct {
	Channel Channel `json:"channel" yaml:"channel"`
	// Band is nil when fewer than two grid points reach half maximum; the
	// channel then contributes nothing.
	Band       *spectral.Band `json:"band,omitempty" yaml:"band,omitempty"`
	Weight     float64        `json:"weight" yaml:"weight"`
	Normalized float64        `json:"normalized" yaml:"normalized"`
	// LuxPerMicrowatt is K for the channel, in lux per µW/cm².
	LuxPerMicrowatt float64 `json:"lux_per_uw_cm2" yaml:"lux_per_uw_cm2"`
}

// LuxReport holds the irradiance to illuminance conversion factors.
type LuxReport struct {
	GridStart float64      `json:"grid_start_nm" yaml:"grid_start_nm"`
	GridStop  float64      `json:"grid_stop_nm" yaml:"grid_stop_nm"`
	KTotal    float64      `json:"k_total" yaml:"k_total"`
	Channels  []LuxChannel `json:"channels" yaml:"channels"`

	// Grid and Curves carry the normalized responses and V(λ) for plotting.
	Grid   spectral.Grid        `json:"-" yaml:"-"`
	Curves map[string][]float64 `json:"-" yaml:"-"`
}

// LuxFactors splits the total irradiance to lux conversion across the
// filtered channels in proportion to how much of each channel's FWHM band
// the photopic curve V(λ) sees.
func (p *Pipeline) LuxFactors() (*LuxReport, error) {
	sensor, err := p.sensorCurves()
	if err != nil {
		return nil, err
	}
	photopic, err := p.photopicCurve()
	if err != nil {
		return nil, err
	}

	c := p.profile.Constants
	scaled := make([]*spectral.Curve, len(ColorChannels))
	for i, ch := range ColorChannels {
		k := c.CountsPerIrradiance.Get(ch)
		scaled[i] = sensor[ch].Map(func(v float64) float64 { return v / k })
	}
	normalized, err := spectral.ScaleCurves(spectral.GlobalAbsMax(scaled...), scaled...)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize sensor responses: %w", err)
	}

	sLo, sHi := sensor[Clear].Domain()
	vLo, vHi := photopic.Domain()
	lo, hi := math.Max(sLo, vLo), math.Min(sHi, vHi)
	grid, err := spectral.Inclusive(lo, hi, 1)
	if err != nil {
		return nil, fmt.Errorf("sensor and photopic curve do not overlap: %w", err)
	}

	zeroFill := spectral.WithEdge(spectral.ZeroFill)
	v, err := spectral.Resample(photopic, grid, zeroFill)
	if err != nil {
		return nil, fmt.Errorf("failed to resample photopic curve: %w", err)
	}

	report := &LuxReport{
		GridStart: grid[0],
		GridStop:  grid[len(grid)-1],
		KTotal:    1 / (c.IrradiancePerLux * 100),
		Grid:      grid,
		Curves:    map[string][]float64{"V(λ)": peakNormalized(v).Values},
	}

	weights := make(map[string]float64, len(ColorChannels))
	for i, ch := range ColorChannels {
		r, err := spectral.Resample(normalized[i], grid, zeroFill)
		if err != nil {
			return nil, fmt.Errorf("failed to resample %s channel: %w", ch, err)
		}
		report.Curves[string(ch)] = r.Values

		entry := LuxChannel{Channel: ch}
		band, err := spectral.HalfMaxBand(r)
		if err == nil && band.Points() >= 2 {
			entry.Band = &band
			entry.Weight, err = spectral.WeightedSum(r, v, band.Left, band.Right)
			if err != nil {
				return nil, fmt.Errorf("%s channel: %w", ch, err)
			}
		} else {
			p.logger.Warn("Channel has no usable half-maximum band, lux weight set to zero", logging.Fields{
				"channel": ch,
			})
		}
		weights[string(ch)] = entry.Weight
		report.Channels = append(report.Channels, entry)
	}

	shares, err := spectral.Normalize(weights)
	if err != nil {
		return nil, fmt.Errorf("no channel overlaps the photopic curve: %w", err)
	}
	for i := range report.Channels {
		ch := &report.Channels[i]
		ch.Normalized = shares[string(ch.Channel)]
		ch.LuxPerMicrowatt = report.KTotal * ch.Normalized
	}

	return report, nil
}

// peakNormalized scales r so its largest value is 1.
func peakNormalized(r *spectral.Resampled) *spectral.Resampled {
	peak, idx := r.Peak()
	if idx < 0 || peak <= 0 {
		return r.Scale(0)
	}
	return r.Scale(1 / peak)
}
