// Package testutil holds synthetic spectra and tolerance helpers shared by
// package tests.
package testutil

import "math"

// Wavelengths returns start..stop inclusive in steps of step.
func Wavelengths(start, stop, step float64) []float64 {
	n := int(math.Round((stop-start)/step)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Triangle evaluates a triangular peak of the given height centred at center
// that falls to zero halfBase nanometres either side.
func Triangle(wavelengths []float64, center, halfBase, height float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		d := math.Abs(w - center)
		if d < halfBase {
			out[i] = height * (1 - d/halfBase)
		}
	}
	return out
}

// Gaussian evaluates a unit-peak Gaussian with the given full width at half
// maximum.
func Gaussian(wavelengths []float64, center, fwhm float64) []float64 {
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		x := (w - center) / sigma
		out[i] = math.Exp(-0.5 * x * x)
	}
	return out
}

// Constant returns a slice of length n filled with v.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
