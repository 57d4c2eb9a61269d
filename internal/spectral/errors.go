package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCurve reports input tables that cannot describe a curve:
	// fewer than two points, mismatched lengths or non-increasing wavelengths.
	ErrMalformedCurve = errors.New("malformed spectral curve")

	// ErrEmptyBand is returned when no grid point reaches half of the peak.
	ErrEmptyBand = errors.New("empty half-maximum band")

	// ErrDivideByZero is returned by normalizers whose divisor is zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrOutOfRange is wrapped by RangeError.
	ErrOutOfRange = errors.New("wavelength range outside grid")

	// ErrGridMismatch is returned when two curves are not co-sampled.
	ErrGridMismatch = errors.New("curves are not sampled on the same grid")

	// ErrEmptyGrid is returned for grids without any sample position.
	ErrEmptyGrid = errors.New("empty wavelength grid")
)

// RangeError carries the offending bounds of a request that does not fit the
// sampled grid.
type RangeError struct {
	Lo, Hi           float64
	GridMin, GridMax float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: requested [%g, %g], grid covers [%g, %g]",
		ErrOutOfRange, e.Lo, e.Hi, e.GridMin, e.GridMax)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedCurve, fmt.Sprintf(format, args...))
}
