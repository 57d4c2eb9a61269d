package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/spectral-calibration/internal/testutil"
)

func TestIntegrateTriangleArea(t *testing.T) {
	r := triangleResampled(t)

	area, err := Integrate(r, 480, 520)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, area, 1e-9)

	zero, err := Integrate(r, 500, 500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)
}

func TestIntegrateIsAdditive(t *testing.T) {
	ws := testutil.Wavelengths(380, 780, 20)
	c, err := NewCurve(ws, testutil.Gaussian(ws, 600, 80))
	require.NoError(t, err)
	g, err := Inclusive(380, 780, 1)
	require.NoError(t, err)
	r, err := Resample(c, g)
	require.NoError(t, err)

	whole, err := IntegrateAll(r)
	require.NoError(t, err)

	cuts := []float64{380, 451, 523, 600, 702, 780}
	var sum float64
	for i := 0; i < len(cuts)-1; i++ {
		part, err := Integrate(r, cuts[i], cuts[i+1])
		require.NoError(t, err)
		sum += part
	}
	assert.InDelta(t, whole, sum, 1e-9)
}

func TestIntegrateRejectsOutOfGridBounds(t *testing.T) {
	r := triangleResampled(t)

	_, err := Integrate(r, 460, 500)
	require.Error(t, err)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 460.0, rangeErr.Lo)
	assert.Equal(t, 470.0, rangeErr.GridMin)

	_, err = Integrate(r, 510, 490)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWeightedIntegralMultipliesBeforeIntegrating(t *testing.T) {
	ws := testutil.Wavelengths(400, 500, 5)
	vs := testutil.Constant(1, len(ws))
	for i := range vs {
		vs[i] = 0.5 + 0.5*math.Sin(float64(i)/3)
	}
	c, err := NewCurve(ws, vs)
	require.NoError(t, err)
	g, err := Inclusive(400, 500, 1)
	require.NoError(t, err)
	r, err := Resample(c, g)
	require.NoError(t, err)

	weighted, err := WeightedIntegral(r, r, 400, 500)
	require.NoError(t, err)

	squared, err := Multiply(r, r)
	require.NoError(t, err)
	direct, err := Integrate(squared, 400, 500)
	require.NoError(t, err)

	assert.InDelta(t, direct, weighted, 1e-12)

	unit := &Resampled{Grid: g, Values: testutil.Constant(1, len(g))}
	flat, err := WeightedIntegral(unit, unit, 400, 500)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, flat, 1e-9)
}

func TestWeightedSumUsesRectangleRule(t *testing.T) {
	g := Grid{1, 2, 3, 4}
	a := &Resampled{Grid: g, Values: []float64{1, 2, 3, 4}}
	b := &Resampled{Grid: g, Values: []float64{2, 2, 2, 2}}

	sum, err := WeightedSum(a, b, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 18.0, sum)
}

func TestMultiplyRequiresSharedGrid(t *testing.T) {
	a := &Resampled{Grid: Grid{1, 2}, Values: []float64{1, 1}}
	b := &Resampled{Grid: Grid{1, 2, 3}, Values: []float64{1, 1, 1}}
	_, err := Multiply(a, b)
	assert.ErrorIs(t, err, ErrGridMismatch)
}

func TestMean(t *testing.T) {
	r := &Resampled{Grid: Grid{1, 2, 3, 4}, Values: []float64{1, 2, 3, 10}}
	m, err := Mean(r, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)
}
