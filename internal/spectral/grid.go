package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// gridTolerance absorbs floating point drift when matching wavelengths
// against grid points built by repeated addition.
const gridTolerance = 1e-9

// Grid is an ordered list of wavelengths a curve is evaluated on.
type Grid []float64

// Arange mirrors numpy.arange: start, start+step, ... while < stop.
func Arange(start, stop, step float64) (Grid, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("grid step must be positive, got %g", step)
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil, fmt.Errorf("%w: [%g, %g) step %g", ErrEmptyGrid, start, stop, step)
	}
	g := make(Grid, n)
	for i := range g {
		g[i] = start + float64(i)*step
	}
	return g, nil
}

// Inclusive builds start..stop with the given step, including stop when it
// lies on the step lattice. It is the "arange(min, max+1, 1)" idiom.
func Inclusive(start, stop, step float64) (Grid, error) {
	return Arange(start, stop+step/2, step)
}

// Linspace mirrors numpy.linspace with the endpoint included.
func Linspace(start, stop float64, n int) (Grid, error) {
	switch {
	case n <= 0:
		return nil, fmt.Errorf("%w: linspace with %d points", ErrEmptyGrid, n)
	case n == 1:
		return Grid{start}, nil
	}
	return Grid(floats.Span(make([]float64, n), start, stop)), nil
}

// Bounds returns the first and last grid position.
func (g Grid) Bounds() (float64, float64) {
	return g[0], g[len(g)-1]
}

// Equal reports whether both grids hold the same positions.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if math.Abs(g[i]-o[i]) > gridTolerance {
			return false
		}
	}
	return true
}

// span returns the index range [i, j] of grid points inside [lo, hi].
func (g Grid) span(lo, hi float64) (int, int, error) {
	if len(g) == 0 {
		return 0, 0, ErrEmptyGrid
	}
	gmin, gmax := g.Bounds()
	if lo > hi || lo < gmin-gridTolerance || hi > gmax+gridTolerance {
		return 0, 0, &RangeError{Lo: lo, Hi: hi, GridMin: gmin, GridMax: gmax}
	}
	i := 0
	for i < len(g) && g[i] < lo-gridTolerance {
		i++
	}
	j := len(g) - 1
	for j >= 0 && g[j] > hi+gridTolerance {
		j--
	}
	return i, j, nil
}
