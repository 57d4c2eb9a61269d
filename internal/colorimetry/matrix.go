package colorimetry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix3 is a row-major 3×3 matrix as written in calibration profiles.
type Matrix3 [3][3]float64

// Dense converts m to a gonum matrix.
func (m Matrix3) Dense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for i := range m {
		for j := range m[i] {
			d.Set(i, j, m[i][j])
		}
	}
	return d
}

// FromDense copies a 3×3 gonum matrix back into a Matrix3.
func FromDense(d mat.Matrix) Matrix3 {
	var m Matrix3
	for i := range m {
		for j := range m[i] {
			m[i][j] = d.At(i, j)
		}
	}
	return m
}

// Apply multiplies m by a column vector.
func (m Matrix3) Apply(v [3]float64) [3]float64 {
	var out [3]float64
	for i := range m {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// ConversionMatrix returns C = T·S⁻¹. Row i of T is the XYZ of reference
// light i and row i of S is the sensor's clear-normalized RGB response to the
// same light.
func ConversionMatrix(t, s Matrix3) (Matrix3, error) {
	sd := s.Dense()
	if det := mat.Det(sd); det == 0 || math.IsNaN(det) {
		return Matrix3{}, fmt.Errorf("%w: determinant %g", ErrSingularMatrix, det)
	}

	var inv mat.Dense
	if err := inv.Inverse(sd); err != nil {
		return Matrix3{}, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}

	var c mat.Dense
	c.Mul(t.Dense(), &inv)
	return FromDense(&c), nil
}
