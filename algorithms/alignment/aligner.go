package alignment

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/pathscore/logging"
	"github.com/RyanBlaney/pathscore/omics"
	"gonum.org/v1/gonum/mat"
)

// AlignedPair is one sample column joined with the weight matrix.
//
// IDs, Values and the columns of Weights share the same index
// correspondence: Values[i] and Weights.ColView(i) both belong to IDs[i].
type AlignedPair struct {
	Sample   string     `json:"sample"`
	IDs      []string   `json:"ids"`
	Values   []float64  `json:"values"`
	Weights  *mat.Dense `json:"-"` // pathways × len(IDs)
	Pathways []string   `json:"pathways"`

	// Dropped counts complete-case features absent from the weight matrix
	Dropped int `json:"dropped"`
	// Missing counts rows removed by the complete-case filter
	Missing int `json:"missing"`
}

// Len returns the number of aligned features
func (p *AlignedPair) Len() int { return len(p.IDs) }

// Aligner intersects a sample column with the weight matrix identifiers
type Aligner struct {
	logger logging.Logger
}

// NewAligner creates an aligner that logs through the global logger
func NewAligner() *Aligner {
	return NewAlignerWithLogger(logging.GetGlobalLogger())
}

// NewAlignerWithLogger creates an aligner with an explicit logger
func NewAlignerWithLogger(logger logging.Logger) *Aligner {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Aligner{
		logger: logger.WithFields(logging.Fields{
			"component": "identifier_aligner",
		}),
	}
}

// Align drops missing rows from column col of fm, inner-joins the surviving
// identifiers with wm and subsets both sides to the same identifier order.
// Identifiers are sorted lexicographically. Neither input is modified.
func (a *Aligner) Align(fm *omics.FeatureMatrix, col int, wm *omics.WeightMatrix) (*AlignedPair, error) {
	if fm == nil || wm == nil {
		return nil, fmt.Errorf("%w: feature and weight matrices are required", omics.ErrInvalidParameter)
	}

	ids, values, err := fm.CompleteCases(col)
	if err != nil {
		return nil, err
	}
	sample := fm.Sample(col)

	type match struct {
		id    string
		value float64
		row   int
	}

	seen := make(map[string]struct{}, len(ids))
	matches := make([]match, 0, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate feature identifier %q in column %q", omics.ErrInvalidFeatureMatrix, id, sample)
		}
		seen[id] = struct{}{}

		row, ok := wm.Index(id)
		if !ok {
			continue
		}
		matches = append(matches, match{id: id, value: values[i], row: row})
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: column %q (%d complete features, %d weight features)",
			omics.ErrNoCommonIdentifiers, sample, len(ids), wm.NumFeatures())
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].id < matches[j].id })

	n := len(matches)
	numPathways := wm.NumPathways()
	pair := &AlignedPair{
		Sample:   sample,
		IDs:      make([]string, n),
		Values:   make([]float64, n),
		Weights:  mat.NewDense(numPathways, n, nil),
		Pathways: wm.Pathways(),
		Dropped:  len(ids) - n,
		Missing:  fm.NumFeatures() - len(ids),
	}
	for i, m := range matches {
		pair.IDs[i] = m.id
		pair.Values[i] = m.value
		for p := 0; p < numPathways; p++ {
			pair.Weights.Set(p, i, wm.At(m.row, p))
		}
	}

	a.logger.Debug("Aligned column", logging.Fields{
		"sample":   sample,
		"features": n,
		"dropped":  pair.Dropped,
		"missing":  pair.Missing,
	})

	return pair, nil
}
