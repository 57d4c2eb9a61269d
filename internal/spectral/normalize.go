package spectral

import (
	"fmt"
	"math"
)

// Normalize divides every value by the sum of all values.
func Normalize(values map[string]float64) (map[string]float64, error) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: values sum to zero", ErrDivideByZero)
	}
	return NormalizeByMax(values, sum)
}

// NormalizeByMax divides every value by peak.
func NormalizeByMax(values map[string]float64, peak float64) (map[string]float64, error) {
	if peak == 0 {
		return nil, fmt.Errorf("%w: normalizing by zero", ErrDivideByZero)
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v / peak
	}
	return out, nil
}

// GlobalAbsMax returns the largest absolute value across several curves,
// ignoring NaN markers.
func GlobalAbsMax(curves ...*Curve) float64 {
	var m float64
	for _, c := range curves {
		for _, v := range c.values {
			if a := math.Abs(v); a > m {
				m = a
			}
		}
	}
	return m
}

// ScaleCurves divides each curve by the same divisor, typically the result of
// GlobalAbsMax.
func ScaleCurves(divisor float64, curves ...*Curve) ([]*Curve, error) {
	if divisor == 0 {
		return nil, fmt.Errorf("%w: scaling curves by 1/0", ErrDivideByZero)
	}
	out := make([]*Curve, len(curves))
	for i, c := range curves {
		out[i] = c.Map(func(v float64) float64 { return v / divisor })
	}
	return out, nil
}
