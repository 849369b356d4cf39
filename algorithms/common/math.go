package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical helpers shared by the scoring stages, built on gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// StandardDeviation calculates the sample standard deviation (divisor n-1).
// It is NaN for fewer than two observations.
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	return stat.StdDev(data, nil)
}

// MeanStdDev returns the mean and sample standard deviation in one pass
func MeanStdDev(data []float64) (mean, std float64) {
	if len(data) < 2 {
		return Mean(data), math.NaN()
	}
	return stat.MeanStdDev(data, nil)
}

// SortedCopy returns an ascending copy of data
func SortedCopy(data []float64) []float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return sorted
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AllFinite reports whether every element of data is finite
func AllFinite(data []float64) bool {
	if floats.HasNaN(data) {
		return false
	}
	for _, v := range data {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
