package stats

import (
	"fmt"

	"github.com/RyanBlaney/pathscore/algorithms/common"
	"github.com/RyanBlaney/pathscore/omics"
	"gonum.org/v1/gonum/stat"
)

// ECDF is the empirical cumulative distribution function of a sample:
// Eval(x) is the fraction of observations less than or equal to x.
type ECDF struct {
	sorted []float64
}

// NewECDF builds the step function of sample. The sample is copied.
func NewECDF(sample []float64) (*ECDF, error) {
	if len(sample) == 0 {
		return nil, fmt.Errorf("%w: empty sample", omics.ErrInvalidParameter)
	}
	if !common.AllFinite(sample) {
		return nil, fmt.Errorf("%w: sample contains NaN or Inf", omics.ErrNonFiniteScore)
	}
	return &ECDF{sorted: common.SortedCopy(sample)}, nil
}

// Eval returns the fraction of observations <= x, in [0, 1]
func (e *ECDF) Eval(x float64) float64 {
	return stat.CDF(x, stat.Empirical, e.sorted, nil)
}

// Len returns the number of observations
func (e *ECDF) Len() int { return len(e.sorted) }
