package omics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NA marks a missing measurement in a FeatureMatrix
var NA = math.NaN()

// IsNA reports whether v is a missing measurement
func IsNA(v float64) bool {
	return math.IsNaN(v)
}

// FeatureMatrix holds measured values keyed by feature identifier (rows) for
// a set of samples or contrasts (columns). Missing values are NaN.
type FeatureMatrix struct {
	ids     []string
	samples []string
	values  *mat.Dense // features × samples
}

// NewFeatureMatrix builds a feature matrix from one row of values per
// feature. Rows must all have len(samples) entries.
func NewFeatureMatrix(ids, samples []string, rows [][]float64) (*FeatureMatrix, error) {
	if len(ids) == 0 || len(samples) == 0 {
		return nil, fmt.Errorf("%w: feature matrix needs at least one feature and one sample", ErrInvalidFeatureMatrix)
	}
	if len(rows) != len(ids) {
		return nil, fmt.Errorf("%w: %d identifiers but %d rows", ErrInvalidFeatureMatrix, len(ids), len(rows))
	}
	if err := checkLabels(samples, "sample"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeatureMatrix, err)
	}

	data := make([]float64, 0, len(ids)*len(samples))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty feature identifier at row %d", ErrInvalidFeatureMatrix, i)
		}
		if len(rows[i]) != len(samples) {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d", ErrInvalidFeatureMatrix, id, len(rows[i]), len(samples))
		}
		data = append(data, rows[i]...)
	}

	return &FeatureMatrix{
		ids:     append([]string(nil), ids...),
		samples: append([]string(nil), samples...),
		values:  mat.NewDense(len(ids), len(samples), data),
	}, nil
}

// NumFeatures returns the number of feature rows
func (fm *FeatureMatrix) NumFeatures() int { return len(fm.ids) }

// NumSamples returns the number of sample/contrast columns
func (fm *FeatureMatrix) NumSamples() int { return len(fm.samples) }

// Samples returns a copy of the sample names in column order
func (fm *FeatureMatrix) Samples() []string {
	return append([]string(nil), fm.samples...)
}

// Sample returns the name of column col
func (fm *FeatureMatrix) Sample(col int) string { return fm.samples[col] }

// CompleteCases returns the identifiers and values of column col with every
// missing row dropped. The returned slices are copies.
func (fm *FeatureMatrix) CompleteCases(col int) ([]string, []float64, error) {
	if col < 0 || col >= len(fm.samples) {
		return nil, nil, fmt.Errorf("%w: column %d out of range [0,%d)", ErrInvalidParameter, col, len(fm.samples))
	}

	ids := make([]string, 0, len(fm.ids))
	values := make([]float64, 0, len(fm.ids))
	for i, id := range fm.ids {
		v := fm.values.At(i, col)
		if IsNA(v) {
			continue
		}
		ids = append(ids, id)
		values = append(values, v)
	}
	return ids, values, nil
}

// WeightMatrix links features (rows) to pathways (columns) with fixed
// coefficients. It is read-only once built.
type WeightMatrix struct {
	ids      []string
	pathways []string
	index    map[string]int
	weights  *mat.Dense // features × pathways
}

// NewWeightMatrix builds a weight matrix from one row of coefficients per
// feature. Identifiers must be unique and coefficients finite.
func NewWeightMatrix(ids, pathways []string, rows [][]float64) (*WeightMatrix, error) {
	if len(ids) == 0 || len(pathways) == 0 {
		return nil, fmt.Errorf("%w: weight matrix needs at least one feature and one pathway", ErrInvalidWeightMatrix)
	}
	if len(rows) != len(ids) {
		return nil, fmt.Errorf("%w: %d identifiers but %d rows", ErrInvalidWeightMatrix, len(ids), len(rows))
	}
	if err := checkLabels(pathways, "pathway"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeightMatrix, err)
	}

	index := make(map[string]int, len(ids))
	data := make([]float64, 0, len(ids)*len(pathways))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty feature identifier at row %d", ErrInvalidWeightMatrix, i)
		}
		if prev, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate feature identifier %q at rows %d and %d", ErrInvalidWeightMatrix, id, prev, i)
		}
		if len(rows[i]) != len(pathways) {
			return nil, fmt.Errorf("%w: row %q has %d coefficients, want %d", ErrInvalidWeightMatrix, id, len(rows[i]), len(pathways))
		}
		if floats.HasNaN(rows[i]) || hasInf(rows[i]) {
			return nil, fmt.Errorf("%w: non-finite coefficient for feature %q", ErrInvalidWeightMatrix, id)
		}
		index[id] = i
		data = append(data, rows[i]...)
	}

	return &WeightMatrix{
		ids:      append([]string(nil), ids...),
		pathways: append([]string(nil), pathways...),
		index:    index,
		weights:  mat.NewDense(len(ids), len(pathways), data),
	}, nil
}

// NumFeatures returns the number of feature rows
func (wm *WeightMatrix) NumFeatures() int { return len(wm.ids) }

// NumPathways returns the number of pathway columns
func (wm *WeightMatrix) NumPathways() int { return len(wm.pathways) }

// Pathways returns a copy of the pathway names in column order
func (wm *WeightMatrix) Pathways() []string {
	return append([]string(nil), wm.pathways...)
}

// Index returns the row of feature id
func (wm *WeightMatrix) Index(id string) (int, bool) {
	i, ok := wm.index[id]
	return i, ok
}

// At returns the coefficient of feature row i for pathway j
func (wm *WeightMatrix) At(i, j int) float64 {
	return wm.weights.At(i, j)
}

func checkLabels(labels []string, kind string) error {
	seen := make(map[string]struct{}, len(labels))
	for i, l := range labels {
		if l == "" {
			return fmt.Errorf("empty %s name at column %d", kind, i)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("duplicate %s name %q", kind, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

func hasInf(xs []float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
