package spectral

import (
	"math"
	"slices"
)

// Curve is a tabulated (wavelength, response) function. Wavelengths are in
// nanometres and strictly increasing. A Curve never changes after NewCurve.
type Curve struct {
	wavelengths []float64
	values      []float64
}

// NewCurve validates and copies the given samples.
func NewCurve(wavelengths, values []float64) (*Curve, error) {
	if len(wavelengths) != len(values) {
		return nil, malformed("%d wavelengths for %d values", len(wavelengths), len(values))
	}
	if len(wavelengths) < 2 {
		return nil, malformed("need at least 2 points, got %d", len(wavelengths))
	}
	for i, w := range wavelengths {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, malformed("wavelength %d is not finite", i)
		}
		if i > 0 && w <= wavelengths[i-1] {
			return nil, malformed("wavelengths not strictly increasing at index %d (%g after %g)",
				i, w, wavelengths[i-1])
		}
	}
	return &Curve{
		wavelengths: slices.Clone(wavelengths),
		values:      slices.Clone(values),
	}, nil
}

// Len returns the number of samples.
func (c *Curve) Len() int { return len(c.wavelengths) }

// Wavelengths returns a copy of the sample positions.
func (c *Curve) Wavelengths() []float64 { return slices.Clone(c.wavelengths) }

// Values returns a copy of the sample values.
func (c *Curve) Values() []float64 { return slices.Clone(c.values) }

// Domain returns the first and last wavelength.
func (c *Curve) Domain() (float64, float64) {
	return c.wavelengths[0], c.wavelengths[len(c.wavelengths)-1]
}

// Map returns a new curve on the same wavelengths with f applied to each value.
func (c *Curve) Map(f func(float64) float64) *Curve {
	out := &Curve{
		wavelengths: slices.Clone(c.wavelengths),
		values:      make([]float64, len(c.values)),
	}
	for i, v := range c.values {
		out.values[i] = f(v)
	}
	return out
}

// Resampled is a curve evaluated on a Grid. Values may hold NaN where the
// source had no data (see NoData).
type Resampled struct {
	Grid   Grid
	Values []float64
}

// Len returns the number of grid points.
func (r *Resampled) Len() int { return len(r.Values) }

// At returns the wavelength and value at index i.
func (r *Resampled) At(i int) (float64, float64) {
	return r.Grid[i], r.Values[i]
}

// Peak returns the largest non-NaN value and its index. The index is -1 when
// every value is NaN or the curve is empty.
func (r *Resampled) Peak() (float64, int) {
	peak, idx := math.Inf(-1), -1
	for i, v := range r.Values {
		if math.IsNaN(v) {
			continue
		}
		if v > peak {
			peak, idx = v, i
		}
	}
	if idx < 0 {
		return math.NaN(), -1
	}
	return peak, idx
}

// Scale returns a copy with every value multiplied by k.
func (r *Resampled) Scale(k float64) *Resampled {
	out := &Resampled{Grid: r.Grid, Values: slices.Clone(r.Values)}
	for i := range out.Values {
		out.Values[i] *= k
	}
	return out
}
