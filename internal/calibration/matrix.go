package calibration

import (
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/spectral-calibration/internal/colorimetry"
	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// NormalizedResponse is one LED's RGB response divided by its clear count.
type NormalizedResponse struct {
	LED string `json:"led" yaml:"led"`

	RGB `yaml:",inline"`
}

// Row returns the response as a matrix row in R, G, B order.
func (n NormalizedResponse) Row() [3]float64 {
	return [3]float64{n.Red, n.Green, n.Blue}
}

// NormalizeReport lists NormalizedResponse per LED.
type NormalizeReport struct {
	LEDs []NormalizedResponse `json:"leds" yaml:"leds"`
}

// NormalizeResponses divides each profile LED response by its clear count.
func (p *Pipeline) NormalizeResponses() (*NormalizeReport, error) {
	return normalizeResponses(p.profile.LEDResponses)
}

func normalizeResponses(responses []LEDResponse) (*NormalizeReport, error) {
	report := &NormalizeReport{}
	for _, r := range responses {
		rgb, err := spectral.NormalizeByMax(map[string]float64{
			string(Red):   r.Red,
			string(Green): r.Green,
			string(Blue):  r.Blue,
		}, r.Clear)
		if err != nil {
			return nil, fmt.Errorf("%s LED clear count: %w", r.LED, err)
		}
		report.LEDs = append(report.LEDs, NormalizedResponse{
			LED: r.LED,
			RGB: RGB{
				Red:   rgb[string(Red)],
				Green: rgb[string(Green)],
				Blue:  rgb[string(Blue)],
			},
		})
	}
	return report, nil
}

// MatrixReport holds the conversion matrix and the inputs it came from.
type MatrixReport struct {
	Derived bool `json:"derived" yaml:"derived"`
	// LEDs names the row order of Tristimulus and Response.
	LEDs        []string            `json:"leds,omitempty" yaml:"leds,omitempty"`
	Tristimulus colorimetry.Matrix3 `json:"tristimulus" yaml:"tristimulus"`
	Response    colorimetry.Matrix3 `json:"response" yaml:"response"`
	Conversion  colorimetry.Matrix3 `json:"conversion" yaml:"conversion"`
}

// ConversionMatrix computes C = T·S⁻¹. With DeriveMatrix set in the profile,
// T comes from LEDTristimulus and S from normalizing ChannelCounts;
// otherwise both are taken from the profile.
func (p *Pipeline) ConversionMatrix() (*MatrixReport, error) {
	report := &MatrixReport{
		Tristimulus: p.profile.TristimulusMatrix,
		Response:    p.profile.ResponseMatrix,
	}

	if p.profile.DeriveMatrix {
		if err := p.deriveMatrixInputs(report); err != nil {
			return nil, fmt.Errorf("failed to derive matrix inputs: %w", err)
		}
	}

	c, err := colorimetry.ConversionMatrix(report.Tristimulus, report.Response)
	if err != nil {
		return nil, err
	}
	report.Conversion = c

	p.logger.Debug("Computed RGB to XYZ conversion matrix", logging.Fields{
		"derived": report.Derived,
	})

	return report, nil
}

func (p *Pipeline) deriveMatrixInputs(report *MatrixReport) error {
	tri, err := p.LEDTristimulus()
	if err != nil {
		return err
	}
	counts, err := p.ChannelCounts()
	if err != nil {
		return err
	}

	responses := make([]LEDResponse, len(counts.LEDs))
	for i, c := range counts.LEDs {
		responses[i] = LEDResponse{LED: c.LED, ChannelValues: c.Counts}
	}
	normalized, err := normalizeResponses(responses)
	if err != nil {
		return err
	}

	if len(tri.LEDs) != 3 || len(normalized.LEDs) != 3 {
		return fmt.Errorf("need 3 LEDs, got %d", len(tri.LEDs))
	}
	report.Derived = true
	report.LEDs = report.LEDs[:0]
	for i := range 3 {
		xyz := tri.LEDs[i].XYZ
		report.Tristimulus[i] = [3]float64{xyz.X, xyz.Y, xyz.Z}
		report.Response[i] = normalized.LEDs[i].Row()
		report.LEDs = append(report.LEDs, tri.LEDs[i].LED)
	}
	return nil
}
