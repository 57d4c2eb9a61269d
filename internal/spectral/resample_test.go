package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/spectral-calibration/internal/testutil"
)

func TestNewCurveValidation(t *testing.T) {
	tests := []struct {
		name        string
		wavelengths []float64
		values      []float64
	}{
		{name: "single point", wavelengths: []float64{500}, values: []float64{1}},
		{name: "empty", wavelengths: nil, values: nil},
		{name: "length mismatch", wavelengths: []float64{400, 500}, values: []float64{1}},
		{name: "repeated wavelength", wavelengths: []float64{400, 400, 500}, values: []float64{1, 2, 3}},
		{name: "decreasing wavelength", wavelengths: []float64{500, 400}, values: []float64{1, 2}},
		{name: "nan wavelength", wavelengths: []float64{400, math.NaN()}, values: []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurve(tt.wavelengths, tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedCurve)
		})
	}
}

func TestNewCurveCopiesInput(t *testing.T) {
	ws := []float64{400, 500, 600}
	vs := []float64{1, 2, 3}
	c, err := NewCurve(ws, vs)
	require.NoError(t, err)

	vs[1] = 100
	assert.Equal(t, []float64{1, 2, 3}, c.Values())
}

func TestResampleReproducesKnots(t *testing.T) {
	ws := []float64{380, 395, 400, 430, 470, 520, 560, 610, 700, 800}
	vs := []float64{0.02, 0.1, 0.18, 0.55, 0.91, 1.0, 0.62, 0.3, 0.05, 0.01}
	c, err := NewCurve(ws, vs)
	require.NoError(t, err)

	for _, m := range []Method{PCHIP, Linear} {
		t.Run(m.String(), func(t *testing.T) {
			r, err := Resample(c, Grid(ws), WithMethod(m))
			require.NoError(t, err)
			testutil.RequireSliceNearlyEqual(t, r.Values, vs, 1e-12)
		})
	}
}

func TestResamplePCHIPDoesNotOvershoot(t *testing.T) {
	// A step is where an unconstrained cubic spline rings.
	ws := []float64{400, 410, 420, 430, 440, 450}
	vs := []float64{0, 0, 0, 1, 1, 1}
	c, err := NewCurve(ws, vs)
	require.NoError(t, err)

	g, err := Inclusive(400, 450, 0.5)
	require.NoError(t, err)
	r, err := Resample(c, g)
	require.NoError(t, err)

	for i, v := range r.Values {
		assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		assert.LessOrEqual(t, v, 1.0, "index %d", i)
		if i > 0 {
			assert.GreaterOrEqual(t, v, r.Values[i-1]-1e-12, "monotone at index %d", i)
		}
	}
}

func TestResampleTwoPointCurveIsLinear(t *testing.T) {
	c, err := NewCurve([]float64{400, 500}, []float64{0, 10})
	require.NoError(t, err)

	g, err := Inclusive(400, 500, 25)
	require.NoError(t, err)
	r, err := Resample(c, g)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, r.Values, []float64{0, 2.5, 5, 7.5, 10}, 1e-12)
}

func TestResampleEdgePolicies(t *testing.T) {
	c, err := NewCurve([]float64{400, 450, 500}, []float64{1, 2, 1})
	require.NoError(t, err)
	g, err := Inclusive(390, 510, 10)
	require.NoError(t, err)

	t.Run("reject", func(t *testing.T) {
		_, err := Resample(c, g)
		require.Error(t, err)

		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, 390.0, rangeErr.Lo)
		assert.Equal(t, 510.0, rangeErr.Hi)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("nodata", func(t *testing.T) {
		r, err := Resample(c, g, WithEdge(NoData))
		require.NoError(t, err)
		assert.True(t, math.IsNaN(r.Values[0]))
		assert.True(t, math.IsNaN(r.Values[len(r.Values)-1]))
		assert.InDelta(t, 1.0, r.Values[1], 1e-12)
		assert.InDelta(t, 2.0, r.Values[6], 1e-12)
	})

	t.Run("zerofill", func(t *testing.T) {
		r, err := Resample(c, g, WithEdge(ZeroFill))
		require.NoError(t, err)
		assert.Equal(t, 0.0, r.Values[0])
		assert.Equal(t, 0.0, r.Values[len(r.Values)-1])
		testutil.RequireFinite(t, r.Values)
	})
}

func TestPCHIPSlopesMatchReferenceValues(t *testing.T) {
	// Derivatives from the weighted harmonic mean rule on a non-uniform grid.
	xs := []float64{0, 1, 3, 4}
	ys := []float64{0, 1, 2, 4}
	d := pchipSlopes(xs, ys)

	// secants: 1, 0.5, 2 ; h: 1, 2, 1
	// d1 = (w1+w2)/(w1/1 + w2/0.5) with w1 = 2*2+1 = 5, w2 = 2+2 = 4
	assert.InDelta(t, 9.0/(5.0/1+4.0/0.5), d[1], 1e-12)
	// d2 = (w1+w2)/(w1/0.5 + w2/2) with w1 = 2*1+2 = 4, w2 = 1+4 = 5
	assert.InDelta(t, 9.0/(4.0/0.5+5.0/2), d[2], 1e-12)
	// left edge: ((2*1+2)*1 - 1*0.5)/3
	assert.InDelta(t, 3.5/3, d[0], 1e-12)
	// right edge: ((2*1+2)*2 - 1*0.5)/3
	assert.InDelta(t, 7.5/3, d[3], 1e-12)
}

func TestPCHIPSlopesFlattenAtExtrema(t *testing.T) {
	d := pchipSlopes([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 2, 1, 0})
	assert.Equal(t, 0.0, d[2])
}

func TestGridConstructors(t *testing.T) {
	g, err := Inclusive(360, 830, 1)
	require.NoError(t, err)
	assert.Len(t, g, 471)
	lo, hi := g.Bounds()
	assert.Equal(t, 360.0, lo)
	assert.Equal(t, 830.0, hi)

	a, err := Arange(0, 1, 0.25)
	require.NoError(t, err)
	assert.Equal(t, Grid{0, 0.25, 0.5, 0.75}, a)

	l, err := Linspace(490, 510, 20)
	require.NoError(t, err)
	assert.Len(t, l, 20)
	assert.Equal(t, 490.0, l[0])
	assert.Equal(t, 510.0, l[19])

	_, err = Arange(10, 0, 1)
	assert.ErrorIs(t, err, ErrEmptyGrid)
	_, err = Linspace(0, 1, 0)
	assert.ErrorIs(t, err, ErrEmptyGrid)
	_, err = Arange(0, 10, 0)
	assert.Error(t, err)
}

func TestInclusiveStaysInsideNonIntegerDomain(t *testing.T) {
	g, err := Inclusive(380.5, 779.7, 1)
	require.NoError(t, err)
	assert.Len(t, g, 400)
	lo, hi := g.Bounds()
	assert.Equal(t, 380.5, lo)
	assert.InDelta(t, 779.5, hi, 1e-9)

	c, err := NewCurve([]float64{380.5, 580, 779.7}, []float64{0, 1, 0})
	require.NoError(t, err)
	_, err = Resample(c, g)
	assert.NoError(t, err, "every grid point lies inside the curve's domain")
}
