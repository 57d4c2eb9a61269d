package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Integrate returns the trapezoidal integral of r over the grid points in
// [lo, hi]. Both bounds must lie within the grid. A zero-width range yields 0.
func Integrate(r *Resampled, lo, hi float64) (float64, error) {
	i, j, err := r.Grid.span(lo, hi)
	if err != nil {
		return 0, err
	}
	if j-i < 1 {
		return 0, nil
	}
	return integrate.Trapezoidal(r.Grid[i:j+1], r.Values[i:j+1]), nil
}

// IntegrateAll integrates r over its whole grid.
func IntegrateAll(r *Resampled) (float64, error) {
	if r.Len() == 0 {
		return 0, ErrEmptyGrid
	}
	lo, hi := r.Grid.Bounds()
	return Integrate(r, lo, hi)
}

// IntegrateBand integrates r over a half-maximum band.
func IntegrateBand(r *Resampled, b Band) (float64, error) {
	return Integrate(r, b.Left, b.Right)
}

// Multiply returns the pointwise product of two co-sampled curves.
func Multiply(a, b *Resampled) (*Resampled, error) {
	if !a.Grid.Equal(b.Grid) {
		return nil, fmt.Errorf("%w: %d and %d points", ErrGridMismatch, a.Len(), b.Len())
	}
	out := &Resampled{Grid: a.Grid, Values: make([]float64, a.Len())}
	vecmath.MulBlock(out.Values, a.Values, b.Values)
	return out, nil
}

// WeightedIntegral integrates the product a·b over [lo, hi].
func WeightedIntegral(a, b *Resampled, lo, hi float64) (float64, error) {
	p, err := Multiply(a, b)
	if err != nil {
		return 0, err
	}
	return Integrate(p, lo, hi)
}

// WeightedSum adds up a·b over the grid points in [lo, hi] without any
// spacing weights (rectangle rule on a unit grid).
func WeightedSum(a, b *Resampled, lo, hi float64) (float64, error) {
	p, err := Multiply(a, b)
	if err != nil {
		return 0, err
	}
	i, j, err := p.Grid.span(lo, hi)
	if err != nil {
		return 0, err
	}
	if j < i {
		return 0, nil
	}
	return floats.Sum(p.Values[i : j+1]), nil
}

// Mean returns the arithmetic mean of the values at grid points in [lo, hi].
func Mean(r *Resampled, lo, hi float64) (float64, error) {
	i, j, err := r.Grid.span(lo, hi)
	if err != nil {
		return 0, err
	}
	if j < i {
		return 0, fmt.Errorf("%w: no grid point in [%g, %g]", ErrEmptyGrid, lo, hi)
	}
	return floats.Sum(r.Values[i:j+1]) / float64(j-i+1), nil
}
