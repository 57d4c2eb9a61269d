package calibration

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a set of conversion factors.
type Stats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Count  int     `json:"count" yaml:"count"`
}

// Summarize computes Stats for data. StdDev is the population standard
// deviation and the median of an even count averages the middle pair.
func Summarize(data []float64) Stats {
	if len(data) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)

	s := Stats{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: percentile(sorted, 50),
	}
	s.Mean, s.StdDev = stat.PopMeanStdDev(sorted, nil)

	return s.sanitized()
}

// percentile linearly interpolates the p-th percentile of sorted data.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	index := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// sanitized replaces non-finite fields with zero so the summary always
// serializes.
func (s Stats) sanitized() Stats {
	for _, f := range []*float64{&s.Mean, &s.Median, &s.Min, &s.Max, &s.StdDev} {
		if math.IsInf(*f, 0) || math.IsNaN(*f) {
			*f = 0
		}
	}
	return s
}
