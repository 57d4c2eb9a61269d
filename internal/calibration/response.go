package calibration

import (
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// ChannelWidth is a channel's half-maximum band on the sensor grid.
type ChannelWidth struct {
	Channel Channel       `json:"channel" yaml:"channel"`
	Band    spectral.Band `json:"band" yaml:"band"`
	WidthNm float64       `json:"width_nm" yaml:"width_nm"`
	// ClearRatio is the clear channel's width divided by this channel's.
	ClearRatio float64 `json:"clear_ratio" yaml:"clear_ratio"`
}

// WidthReport lists the FWHM of every channel.
type WidthReport struct {
	Channels []ChannelWidth `json:"channels" yaml:"channels"`
}

// WidthFactors measures each channel's FWHM and its ratio to the clear
// channel's FWHM.
func (p *Pipeline) WidthFactors() (*WidthReport, error) {
	curves, err := p.resampleSensor(AllChannels)
	if err != nil {
		return nil, err
	}

	bands := make(map[Channel]spectral.Band, len(AllChannels))
	for _, ch := range AllChannels {
		b, err := spectral.HalfMaxBand(curves[ch])
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		bands[ch] = b
	}

	clearWidth := bands[Clear].Width()
	report := &WidthReport{}
	for _, ch := range AllChannels {
		w := bands[ch].Width()
		if w == 0 {
			return nil, fmt.Errorf("%s channel: %w: half-maximum band has zero width", ch, spectral.ErrDivideByZero)
		}
		report.Channels = append(report.Channels, ChannelWidth{
			Channel:    ch,
			Band:       bands[ch],
			WidthNm:    w,
			ClearRatio: clearWidth / w,
		})
	}

	p.logger.Debug("Computed spectral width factors", logging.Fields{
		"clear_width_nm": clearWidth,
	})

	return report, nil
}

// ChannelResponse is a channel's mean relative response inside its FWHM band
// and the converted sensitivity.
type ChannelResponse struct {
	Channel      Channel       `json:"channel" yaml:"channel"`
	Band         spectral.Band `json:"band" yaml:"band"`
	MeanResponse float64       `json:"mean_response" yaml:"mean_response"`
	PeakResponse float64       `json:"peak_response" yaml:"peak_response"`
	// CountsPerMicrowatt is counts/µW/cm² at 1× gain.
	CountsPerMicrowatt float64 `json:"counts_per_uw_cm2" yaml:"counts_per_uw_cm2"`
}

// ResponseReport lists ChannelResponse for the filtered channels.
type ResponseReport struct {
	Conversion float64           `json:"conversion" yaml:"conversion"`
	Channels   []ChannelResponse `json:"channels" yaml:"channels"`
}

// AverageResponse converts each filtered channel's mean in-band response
// into counts/µW/cm², correcting for the channel's narrower band with the
// profile's width factors.
func (p *Pipeline) AverageResponse() (*ResponseReport, error) {
	curves, err := p.resampleSensor(ColorChannels)
	if err != nil {
		return nil, err
	}

	c := p.profile.Constants
	report := &ResponseReport{Conversion: c.AvgResponseConversion}
	for _, ch := range ColorChannels {
		r := curves[ch]
		band, err := spectral.HalfMaxBand(r)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		mean, err := spectral.Mean(r, band.Left, band.Right)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}

		report.Channels = append(report.Channels, ChannelResponse{
			Channel:            ch,
			Band:               band,
			MeanResponse:       mean,
			PeakResponse:       band.Peak,
			CountsPerMicrowatt: mean * c.AvgResponseConversion / c.WidthFactors.Get(ch),
		})
	}

	return report, nil
}

// ChannelIrradiance is one filtered channel's irradiance conversion factor.
type ChannelIrradiance struct {
	Channel       Channel       `json:"channel" yaml:"channel"`
	Band          spectral.Band `json:"band" yaml:"band"`
	TotalResponse float64       `json:"total_response" yaml:"total_response"`
	ClearRatio    float64       `json:"clear_ratio" yaml:"clear_ratio"`
	// ReferenceFactor is counts/µW/cm² at the reference gain and
	// integration time; Factor at the target ones.
	ReferenceFactor float64 `json:"reference_factor" yaml:"reference_factor"`
	Factor          float64 `json:"factor" yaml:"factor"`
}

// IrradianceReport holds the per-channel irradiance conversion factors.
type IrradianceReport struct {
	ClearBand        spectral.Band       `json:"clear_band" yaml:"clear_band"`
	ClearTotal       float64             `json:"clear_total" yaml:"clear_total"`
	GainRatio        float64             `json:"gain_ratio" yaml:"gain_ratio"`
	IntegrationRatio float64             `json:"integration_ratio" yaml:"integration_ratio"`
	TargetGain       float64             `json:"target_gain" yaml:"target_gain"`
	TargetTimeMs     float64             `json:"target_integration_ms" yaml:"target_integration_ms"`
	Channels         []ChannelIrradiance `json:"channels" yaml:"channels"`
}

// IrradianceFactors scales the clear channel's known conversion by each
// channel's in-band integrated response relative to clear, then rescales from
// the reference gain and integration time to the target ones.
func (p *Pipeline) IrradianceFactors() (*IrradianceReport, error) {
	curves, err := p.resampleSensor(AllChannels)
	if err != nil {
		return nil, err
	}

	totals := make(map[Channel]float64, len(AllChannels))
	bands := make(map[Channel]spectral.Band, len(AllChannels))
	for _, ch := range AllChannels {
		band, err := spectral.HalfMaxBand(curves[ch])
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		total, err := spectral.IntegrateBand(curves[ch], band)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		bands[ch], totals[ch] = band, total
	}
	if totals[Clear] == 0 {
		return nil, fmt.Errorf("%w: clear channel integrates to zero over %s", spectral.ErrDivideByZero, bands[Clear])
	}

	c := p.profile.Constants
	report := &IrradianceReport{
		ClearBand:        bands[Clear],
		ClearTotal:       totals[Clear],
		GainRatio:        c.TargetGain / c.ReferenceGain,
		IntegrationRatio: c.TargetIntegrationMs / c.ReferenceIntegrationMs,
		TargetGain:       c.TargetGain,
		TargetTimeMs:     c.TargetIntegrationMs,
	}
	for _, ch := range ColorChannels {
		ratio := totals[ch] / totals[Clear]
		ref := c.ClearConversion * ratio
		report.Channels = append(report.Channels, ChannelIrradiance{
			Channel:         ch,
			Band:            bands[ch],
			TotalResponse:   totals[ch],
			ClearRatio:      ratio,
			ReferenceFactor: ref,
			Factor:          ref * report.GainRatio * report.IntegrationRatio,
		})
	}

	return report, nil
}
