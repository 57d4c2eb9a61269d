package colorimetry

import (
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

var (
	// ErrSingularMatrix is returned when a response matrix cannot be inverted.
	ErrSingularMatrix = errors.New("matrix is singular")

	// ErrNarrowBand is returned when a band is too narrow to sample twice.
	ErrNarrowBand = errors.New("band too narrow to integrate")
)

// XYZ is a CIE 1931 tristimulus value.
type XYZ struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Sum returns X+Y+Z.
func (v XYZ) Sum() float64 { return v.X + v.Y + v.Z }

// Chromaticity projects v onto the xy plane. A zero sum has no chromaticity
// and yields spectral.ErrDivideByZero.
func (v XYZ) Chromaticity() (Chromaticity, error) {
	s := v.Sum()
	if s == 0 || math.IsNaN(s) {
		return Chromaticity{}, fmt.Errorf("%w: X+Y+Z is %g", spectral.ErrDivideByZero, s)
	}
	return Chromaticity{X: v.X / s, Y: v.Y / s}, nil
}

// Chromaticity is an (x, y) coordinate on the CIE 1931 diagram.
type Chromaticity struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (c Chromaticity) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.X, c.Y)
}

// Tristimulus weights the spectrum s by each colour-matching function and
// integrates over [lo, hi]. s and cmf must share a grid.
func Tristimulus(s *spectral.Resampled, cmf *SampledCMF, lo, hi float64) (XYZ, error) {
	var out XYZ
	for _, part := range []struct {
		dst *float64
		bar *spectral.Resampled
	}{
		{&out.X, cmf.X},
		{&out.Y, cmf.Y},
		{&out.Z, cmf.Z},
	} {
		v, err := spectral.WeightedIntegral(s, part.bar, lo, hi)
		if err != nil {
			return XYZ{}, err
		}
		*part.dst = v
	}
	return out, nil
}

// BandTristimulus integrates the bare colour-matching functions across a
// band, sampled on int(width) evenly spaced points. This is the equal-energy
// stimulus restricted to the band. Bands narrower than 2 nm leave fewer than
// two samples and fail with ErrNarrowBand.
func BandTristimulus(cmf *ColorMatchingFunctions, band spectral.Band) (XYZ, error) {
	n := int(band.Width())
	if n < 2 {
		return XYZ{}, fmt.Errorf("%w: band %s gives %d samples", ErrNarrowBand, band, n)
	}
	grid, err := spectral.Linspace(band.Left, band.Right, n)
	if err != nil {
		return XYZ{}, fmt.Errorf("band %s: %w", band, err)
	}
	sampled, err := cmf.Resample(grid)
	if err != nil {
		return XYZ{}, err
	}

	var out XYZ
	if out.X, err = spectral.IntegrateAll(sampled.X); err != nil {
		return XYZ{}, err
	}
	if out.Y, err = spectral.IntegrateAll(sampled.Y); err != nil {
		return XYZ{}, err
	}
	if out.Z, err = spectral.IntegrateAll(sampled.Z); err != nil {
		return XYZ{}, err
	}
	return out, nil
}
