package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Method selects the interpolation scheme used by Resample.
type Method int

const (
	// PCHIP is shape-preserving monotone piecewise cubic interpolation.
	PCHIP Method = iota
	// Linear is piecewise linear interpolation.
	Linear
)

func (m Method) String() string {
	switch m {
	case PCHIP:
		return "pchip"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// EdgePolicy decides what happens to grid points outside the curve's domain.
type EdgePolicy int

const (
	// Reject fails the resampling with a RangeError.
	Reject EdgePolicy = iota
	// NoData marks outside points with NaN.
	NoData
	// ZeroFill sets outside points to zero.
	ZeroFill
)

func (p EdgePolicy) String() string {
	switch p {
	case Reject:
		return "reject"
	case NoData:
		return "nodata"
	case ZeroFill:
		return "zerofill"
	default:
		return fmt.Sprintf("edge(%d)", int(p))
	}
}

type options struct {
	method Method
	edge   EdgePolicy
}

// Option configures Resample.
type Option func(*options)

// WithMethod selects the interpolation method. PCHIP is the default.
func WithMethod(m Method) Option {
	return func(o *options) { o.method = m }
}

// WithEdge selects the out-of-domain policy. Reject is the default.
func WithEdge(p EdgePolicy) Option {
	return func(o *options) { o.edge = p }
}

type predictor interface {
	Predict(x float64) float64
}

// Resample evaluates c at every point of grid.
func Resample(c *Curve, grid Grid, opts ...Option) (*Resampled, error) {
	if c == nil || c.Len() < 2 {
		return nil, malformed("nothing to resample")
	}
	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}
	o := options{method: PCHIP, edge: Reject}
	for _, opt := range opts {
		opt(&o)
	}

	lo, hi := c.Domain()
	if o.edge == Reject {
		gmin, gmax := grid.Bounds()
		if gmin < lo-gridTolerance || gmax > hi+gridTolerance {
			return nil, &RangeError{Lo: gmin, Hi: gmax, GridMin: lo, GridMax: hi}
		}
	}

	p, err := fit(c, o.method)
	if err != nil {
		return nil, err
	}

	out := &Resampled{Grid: grid, Values: make([]float64, len(grid))}
	for i, w := range grid {
		switch {
		case w < lo-gridTolerance || w > hi+gridTolerance:
			if o.edge == ZeroFill {
				out.Values[i] = 0
			} else {
				out.Values[i] = math.NaN()
			}
		default:
			out.Values[i] = p.Predict(math.Min(math.Max(w, lo), hi))
		}
	}
	return out, nil
}

func fit(c *Curve, m Method) (predictor, error) {
	switch m {
	case PCHIP:
		var pc interp.PiecewiseCubic
		pc.FitWithDerivatives(c.wavelengths, c.values, pchipSlopes(c.wavelengths, c.values))
		return &pc, nil
	case Linear:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(c.wavelengths, c.values); err != nil {
			return nil, fmt.Errorf("linear fit: %w", err)
		}
		return &pl, nil
	default:
		return nil, fmt.Errorf("unknown interpolation method %v", m)
	}
}

// pchipSlopes returns the knot derivatives of the Fritsch-Butland monotone
// cubic: a weighted harmonic mean of adjacent secants, zero at local extrema,
// and the one-sided three-point rule at both ends.
func pchipSlopes(xs, ys []float64) []float64 {
	n := len(xs)
	d := make([]float64, n)
	h := make([]float64, n-1)
	m := make([]float64, n-1)
	for k := 0; k < n-1; k++ {
		h[k] = xs[k+1] - xs[k]
		m[k] = (ys[k+1] - ys[k]) / h[k]
	}
	if n == 2 {
		d[0], d[1] = m[0], m[0]
		return d
	}

	for k := 1; k < n-1; k++ {
		if sign(m[k-1]) != sign(m[k]) || m[k-1] == 0 || m[k] == 0 {
			d[k] = 0
			continue
		}
		w1 := 2*h[k] + h[k-1]
		w2 := h[k] + 2*h[k-1]
		d[k] = (w1 + w2) / (w1/m[k-1] + w2/m[k])
	}
	d[0] = pchipEdge(h[0], h[1], m[0], m[1])
	d[n-1] = pchipEdge(h[n-2], h[n-3], m[n-2], m[n-3])
	return d
}

func pchipEdge(h0, h1, m0, m1 float64) float64 {
	d := ((2*h0+h1)*m0 - h0*m1) / (h0 + h1)
	if sign(d) != sign(m0) {
		return 0
	}
	if sign(m0) != sign(m1) && math.Abs(d) > 3*math.Abs(m0) {
		return 3 * m0
	}
	return d
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
