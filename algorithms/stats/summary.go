package stats

import (
	"math"

	"github.com/RyanBlaney/pathscore/algorithms/common"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NullSummary describes one pathway's null distribution
type NullSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // sample standard deviation, NaN below 2 trials
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Summarize computes location and spread of a null row
func Summarize(row []float64) NullSummary {
	if len(row) == 0 {
		nan := math.NaN()
		return NullSummary{Mean: nan, StdDev: nan, Min: nan, Median: nan, Max: nan}
	}

	mean, std := common.MeanStdDev(row)
	sorted := common.SortedCopy(row)

	return NullSummary{
		Count:  len(row),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(sorted),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    floats.Max(sorted),
	}
}
