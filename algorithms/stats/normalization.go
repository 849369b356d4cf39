package stats

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/pathscore/algorithms/common"
	"github.com/RyanBlaney/pathscore/omics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NormalizationType selects how a raw score is judged against its null
type NormalizationType int

const (
	// ZScore reports (score - mean(null)) / sd(null)
	ZScore NormalizationType = iota

	// QuantileSignificance reports 2*ECDF_null(score) - 1, in [-1, 1]
	QuantileSignificance
)

func (t NormalizationType) String() string {
	switch t {
	case ZScore:
		return "z_score"
	case QuantileSignificance:
		return "quantile_significance"
	default:
		return "unknown"
	}
}

// DegenerateTolerance is the spread, relative to the largest magnitude in a
// null row, below which the row counts as constant. Permutation-invariant
// weight rows produce sums that differ only by rounding.
const DegenerateTolerance = 1e-12

// Normalizer converts raw pathway scores into z-scores or signed empirical
// quantiles against their permutation null distribution
type Normalizer struct {
	method NormalizationType
}

// NewNormalizer creates a normalizer for the given method
func NewNormalizer(method NormalizationType) *Normalizer {
	return &Normalizer{method: method}
}

// Method returns the configured normalization
func (n *Normalizer) Method() NormalizationType { return n.method }

// Normalize judges one score against one null row
func (n *Normalizer) Normalize(score float64, null []float64) (float64, error) {
	if !common.IsFinite(score) {
		return 0, fmt.Errorf("%w: raw score is %v", omics.ErrNonFiniteScore, score)
	}

	switch n.method {
	case ZScore:
		return n.zScore(score, null)
	case QuantileSignificance:
		return n.quantile(score, null)
	default:
		return 0, fmt.Errorf("%w: unknown normalization %d", omics.ErrInvalidParameter, int(n.method))
	}
}

// NormalizeRows normalizes scores[i] against row i of null. The error names
// the failing pathway.
func (n *Normalizer) NormalizeRows(scores *mat.VecDense, null *mat.Dense, pathways []string) ([]float64, error) {
	rows, cols := null.Dims()
	if scores.Len() != rows || len(pathways) != rows {
		return nil, fmt.Errorf("%w: %d scores, %d null rows, %d pathways",
			omics.ErrInvalidParameter, scores.Len(), rows, len(pathways))
	}

	out := make([]float64, rows)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, null)
		v, err := n.Normalize(scores.AtVec(i), row)
		if err != nil {
			return nil, fmt.Errorf("pathway %q: %w", pathways[i], err)
		}
		out[i] = v
	}
	return out, nil
}

func (n *Normalizer) zScore(score float64, null []float64) (float64, error) {
	if len(null) < 2 {
		return 0, fmt.Errorf("%w: %d null trials, need at least 2 for a standard deviation",
			omics.ErrDegenerateNullDistribution, len(null))
	}

	mean, std := common.MeanStdDev(null)
	if !common.IsFinite(mean) || !common.IsFinite(std) {
		return 0, fmt.Errorf("%w: null mean=%v sd=%v", omics.ErrNonFiniteScore, mean, std)
	}
	if std <= DegenerateTolerance*floats.Norm(null, math.Inf(1)) {
		return 0, fmt.Errorf("%w: null sd=%g", omics.ErrDegenerateNullDistribution, std)
	}

	z := (score - mean) / std
	if !common.IsFinite(z) {
		return 0, fmt.Errorf("%w: z=%v", omics.ErrNonFiniteScore, z)
	}
	return z, nil
}

func (n *Normalizer) quantile(score float64, null []float64) (float64, error) {
	ecdf, err := NewECDF(null)
	if err != nil {
		return 0, err
	}
	return ecdf.Eval(score)*2 - 1, nil
}
