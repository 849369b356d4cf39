package pathway

import (
	"github.com/RyanBlaney/pathscore/algorithms/scoring"
	"gonum.org/v1/gonum/mat"
)

// ScoreTable holds one row per sample/contrast and one column per pathway.
// Pathway order is the weight matrix's column order.
type ScoreTable struct {
	Samples  []string   `json:"samples"`
	Pathways []string   `json:"pathways"`
	Values   *mat.Dense `json:"-"` // samples × pathways
}

// Dims returns (samples, pathways)
func (t *ScoreTable) Dims() (int, int) {
	return len(t.Samples), len(t.Pathways)
}

// At returns the score of pathway for sample
func (t *ScoreTable) At(sample, pathway string) (float64, bool) {
	i := indexOf(t.Samples, sample)
	j := indexOf(t.Pathways, pathway)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.Values.At(i, j), true
}

// Row returns a copy of every pathway score of sample
func (t *ScoreTable) Row(sample string) ([]float64, bool) {
	i := indexOf(t.Samples, sample)
	if i < 0 {
		return nil, false
	}
	return mat.Row(nil, i, t.Values), true
}

// PathwayMajor returns a pathways × samples copy of the scores
func (t *ScoreTable) PathwayMajor() *mat.Dense {
	return mat.DenseCopyOf(t.Values.T())
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Result is either *ScoresResult or *ScoresWithNullResult, depending on
// whether null distributions were requested. Use a type switch to get at
// the null distributions.
type Result interface {
	// Table returns the normalized scores of every successful column
	Table() *ScoreTable

	// Failures maps sample name to error for columns skipped under the
	// collect error policy. It is empty under fail-fast.
	Failures() map[string]error

	sealed()
}

// ScoresResult carries the score table only
type ScoresResult struct {
	table    *ScoreTable
	failures map[string]error
}

func (r *ScoresResult) Table() *ScoreTable         { return r.table }
func (r *ScoresResult) Failures() map[string]error { return r.failures }
func (r *ScoresResult) sealed()                    {}

// ScoresWithNullResult also carries each successful column's null
// distribution, keyed by sample name
type ScoresWithNullResult struct {
	ScoresResult
	NullDistributions map[string]*scoring.NullDistribution
}
