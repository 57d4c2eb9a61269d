package colorimetry

import (
	"math"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// fwhmToSigma converts a full width at half maximum into a Gaussian standard
// deviation.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

// Emission models an LED's spectrum as a Gaussian centred on its dominant
// wavelength. HalfWidth is the full width at half maximum in nanometres.
type Emission struct {
	Center    float64 `json:"center_nm" yaml:"center_nm"`
	HalfWidth float64 `json:"half_width_nm" yaml:"half_width_nm"`
}

// Sigma returns the Gaussian standard deviation.
func (e Emission) Sigma() float64 {
	return e.HalfWidth * fwhmToSigma
}

// Gaussian evaluates the peak-normalized emission (1 at Center).
func (e Emission) Gaussian(w float64) float64 {
	x := (w - e.Center) / e.Sigma()
	return math.Exp(-0.5 * x * x)
}

// Density evaluates the area-normalized emission, whose integral over all
// wavelengths is 1.
func (e Emission) Density(w float64) float64 {
	amp := 1 / (e.Sigma() * math.Sqrt(2*math.Pi))
	return amp * e.Gaussian(w)
}

// Sample evaluates the emission at every grid point, area-normalized when
// normalized is true and peak-normalized otherwise.
func (e Emission) Sample(grid spectral.Grid, normalized bool) *spectral.Resampled {
	f := e.Gaussian
	if normalized {
		f = e.Density
	}
	out := &spectral.Resampled{Grid: grid, Values: make([]float64, len(grid))}
	for i, w := range grid {
		out.Values[i] = f(w)
	}
	return out
}
