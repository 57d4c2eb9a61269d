package colorimetry

import (
	"fmt"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

// ColorMatchingFunctions are the tabulated x̄, ȳ, z̄ observer curves.
type ColorMatchingFunctions struct {
	X, Y, Z *spectral.Curve
}

// SampledCMF is a ColorMatchingFunctions evaluated on a shared grid.
type SampledCMF struct {
	Grid    spectral.Grid
	X, Y, Z *spectral.Resampled
}

// Resample evaluates all three functions on grid.
func (c *ColorMatchingFunctions) Resample(grid spectral.Grid, opts ...spectral.Option) (*SampledCMF, error) {
	out := &SampledCMF{Grid: grid}
	for _, part := range []struct {
		name string
		src  *spectral.Curve
		dst  **spectral.Resampled
	}{
		{"x_bar", c.X, &out.X},
		{"y_bar", c.Y, &out.Y},
		{"z_bar", c.Z, &out.Z},
	} {
		r, err := spectral.Resample(part.src, grid, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to resample %s: %w", part.name, err)
		}
		*part.dst = r
	}
	return out, nil
}

// LocusPoint is one monochromatic point of the spectral locus.
type LocusPoint struct {
	Wavelength float64 `json:"wavelength_nm"`
	Chromaticity
}

// SpectralLocus returns the chromaticity of every tabulated wavelength.
// Rows where the three functions sum to zero are skipped.
func SpectralLocus(c *ColorMatchingFunctions) []LocusPoint {
	ws := c.X.Wavelengths()
	xs, ys, zs := c.X.Values(), c.Y.Values(), c.Z.Values()
	n := min(len(xs), len(ys), len(zs))

	locus := make([]LocusPoint, 0, n)
	for i := 0; i < n; i++ {
		xy, err := XYZ{X: xs[i], Y: ys[i], Z: zs[i]}.Chromaticity()
		if err != nil {
			continue
		}
		locus = append(locus, LocusPoint{Wavelength: ws[i], Chromaticity: xy})
	}
	return locus
}
