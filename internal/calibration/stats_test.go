package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		median float64
		mean   float64
		std    float64
	}{
		{name: "odd count", data: []float64{3, 1, 2}, median: 2, mean: 2, std: math.Sqrt(2.0 / 3)},
		{name: "even count averages middle pair", data: []float64{4, 1, 3, 2}, median: 2.5, mean: 2.5, std: math.Sqrt(1.25)},
		{name: "single value", data: []float64{7}, median: 7, mean: 7, std: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.data)
			assert.Equal(t, len(tt.data), s.Count)
			assert.InDelta(t, tt.median, s.Median, 1e-12)
			assert.InDelta(t, tt.mean, s.Mean, 1e-12)
			assert.InDelta(t, tt.std, s.StdDev, 1e-12)
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	data := []float64{3, 1, 2}
	Summarize(data)
	assert.Equal(t, []float64{3, 1, 2}, data)
}

func TestSummarizeEmptyAndNonFinite(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))

	s := Summarize([]float64{1, math.Inf(1)})
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.Max)
	assert.Equal(t, 1.0, s.Min)
}
