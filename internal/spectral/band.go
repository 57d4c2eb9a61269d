package spectral

import (
	"fmt"
	"math"
)

// Band is the half-maximum band of a resampled curve: the first and last grid
// points whose response reaches half of the peak.
type Band struct {
	Left       float64 `json:"left_nm" yaml:"left_nm"`
	Right      float64 `json:"right_nm" yaml:"right_nm"`
	LeftIndex  int     `json:"-" yaml:"-"`
	RightIndex int     `json:"-" yaml:"-"`
	Peak       float64 `json:"peak" yaml:"peak"`
}

// Width returns Right - Left in nanometres.
func (b Band) Width() float64 { return b.Right - b.Left }

// Points returns the number of grid points inside the band.
func (b Band) Points() int { return b.RightIndex - b.LeftIndex + 1 }

func (b Band) String() string {
	return fmt.Sprintf("%g nm to %g nm", b.Left, b.Right)
}

// HalfMaxBand locates the FWHM band of r using the peak of the whole curve.
// NaN markers never count as reaching half maximum.
func HalfMaxBand(r *Resampled) (Band, error) {
	if r == nil || r.Len() == 0 {
		return Band{}, fmt.Errorf("%w: no samples", ErrEmptyBand)
	}
	peak, idx := r.Peak()
	if idx < 0 || peak <= 0 {
		return Band{}, fmt.Errorf("%w: peak %g", ErrEmptyBand, peak)
	}
	half := peak / 2

	left, right := -1, -1
	for i, v := range r.Values {
		if math.IsNaN(v) || v < half {
			continue
		}
		if left < 0 {
			left = i
		}
		right = i
	}
	if left < 0 {
		return Band{}, fmt.Errorf("%w: nothing reaches %g", ErrEmptyBand, half)
	}

	return Band{
		Left:       r.Grid[left],
		Right:      r.Grid[right],
		LeftIndex:  left,
		RightIndex: right,
		Peak:       peak,
	}, nil
}
