package scoring

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/pathscore/algorithms/alignment"
	"github.com/RyanBlaney/pathscore/algorithms/stats"
	"github.com/RyanBlaney/pathscore/logging"
	"github.com/RyanBlaney/pathscore/omics"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultIterations = 10000
	DefaultBatchSize  = 1000
)

// NullDistribution holds the permutation scores of one sample column.
// Scores has one row per pathway and one column per trial.
type NullDistribution struct {
	Sample   string     `json:"sample"`
	Pathways []string   `json:"pathways"`
	Scores   *mat.Dense `json:"-"`
}

// Iterations returns the number of trials
func (nd *NullDistribution) Iterations() int {
	_, k := nd.Scores.Dims()
	return k
}

// Row returns a copy of the null scores of pathway row i
func (nd *NullDistribution) Row(i int) []float64 {
	return mat.Row(nil, i, nd.Scores)
}

// PathwayRow returns a copy of the null scores of the named pathway
func (nd *NullDistribution) PathwayRow(pathway string) ([]float64, bool) {
	for i, p := range nd.Pathways {
		if p == pathway {
			return nd.Row(i), true
		}
	}
	return nil, false
}

// Summaries describes every pathway row, keyed by pathway name
func (nd *NullDistribution) Summaries() map[string]stats.NullSummary {
	out := make(map[string]stats.NullSummary, len(nd.Pathways))
	for i, p := range nd.Pathways {
		out[p] = stats.Summarize(nd.Row(i))
	}
	return out
}

// Generator builds permutation null distributions.
//
// Each trial is a uniformly random reordering of the aligned values. Trials
// are packed column-wise into an n × batch block P and scored with one
// matrix product W · P, so memory stays bounded by the batch size while the
// trial order, and therefore the result, does not depend on it.
type Generator struct {
	iterations int
	batchSize  int
	logger     logging.Logger
}

// NewGenerator creates a generator running iterations trials in blocks of
// batchSize. A non-positive batchSize scores all trials in one block.
func NewGenerator(iterations, batchSize int) (*Generator, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", omics.ErrInvalidParameter, iterations)
	}
	if batchSize <= 0 || batchSize > iterations {
		batchSize = iterations
	}
	return &Generator{
		iterations: iterations,
		batchSize:  batchSize,
		logger: logging.WithFields(logging.Fields{
			"component": "null_distribution_generator",
		}),
	}, nil
}

// WithLogger replaces the generator's logger
func (g *Generator) WithLogger(logger logging.Logger) *Generator {
	if logger != nil {
		g.logger = logger.WithFields(logging.Fields{
			"component": "null_distribution_generator",
		})
	}
	return g
}

// Iterations returns the configured number of trials
func (g *Generator) Iterations() int { return g.iterations }

// Generate draws the trials for pair from perm. The context is checked
// between blocks.
func (g *Generator) Generate(ctx context.Context, pair *alignment.AlignedPair, perm Permuter) (*NullDistribution, error) {
	if err := checkPair(pair); err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, fmt.Errorf("%w: permuter is required", omics.ErrInvalidParameter)
	}

	n := pair.Len()
	numPathways := len(pair.Pathways)
	k := g.iterations

	null := mat.NewDense(numPathways, k, nil)
	block := mat.NewDense(n, g.batchSize, nil)
	seen := make([]bool, n)

	for start := 0; start < k; start += g.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		width := min(g.batchSize, k-start)
		p := block
		if width < g.batchSize {
			p = block.Slice(0, n, 0, width).(*mat.Dense)
		}

		for j := 0; j < width; j++ {
			idx := perm.Perm(n)
			if len(idx) != n {
				return nil, fmt.Errorf("%w: permuter returned %d indices for %d values",
					omics.ErrInvalidParameter, len(idx), n)
			}
			clear(seen)
			for i, src := range idx {
				if src < 0 || src >= n {
					return nil, fmt.Errorf("%w: permutation index %d out of range [0,%d)",
						omics.ErrInvalidParameter, src, n)
				}
				if seen[src] {
					return nil, fmt.Errorf("%w: permutation repeats index %d",
						omics.ErrInvalidParameter, src)
				}
				seen[src] = true
				p.Set(i, j, pair.Values[src])
			}
		}

		dst := null.Slice(0, numPathways, start, start+width).(*mat.Dense)
		dst.Mul(pair.Weights, p)
	}

	g.logger.Debug("Generated null distribution", logging.Fields{
		"sample":     pair.Sample,
		"features":   n,
		"pathways":   numPathways,
		"iterations": k,
		"batch_size": g.batchSize,
	})

	return &NullDistribution{
		Sample:   pair.Sample,
		Pathways: append([]string(nil), pair.Pathways...),
		Scores:   null,
	}, nil
}
