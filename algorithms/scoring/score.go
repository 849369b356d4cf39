package scoring

import (
	"fmt"

	"github.com/RyanBlaney/pathscore/algorithms/alignment"
	"github.com/RyanBlaney/pathscore/omics"
	"gonum.org/v1/gonum/mat"
)

// Score computes the raw weighted-sum score W · v for every pathway of an
// aligned pair. Element i belongs to pair.Pathways[i].
func Score(pair *alignment.AlignedPair) (*mat.VecDense, error) {
	if err := checkPair(pair); err != nil {
		return nil, err
	}

	v := mat.NewVecDense(pair.Len(), pair.Values)
	var score mat.VecDense
	score.MulVec(pair.Weights, v)
	return &score, nil
}

func checkPair(pair *alignment.AlignedPair) error {
	if pair == nil || pair.Weights == nil {
		return fmt.Errorf("%w: aligned pair is required", omics.ErrInvalidParameter)
	}
	n := pair.Len()
	if n == 0 {
		return fmt.Errorf("%w: column %q", omics.ErrNoCommonIdentifiers, pair.Sample)
	}
	r, c := pair.Weights.Dims()
	if len(pair.Values) != n || c != n || r != len(pair.Pathways) {
		return fmt.Errorf("%w: misaligned pair for column %q (ids=%d values=%d weights=%dx%d pathways=%d)",
			omics.ErrInvalidParameter, pair.Sample, n, len(pair.Values), r, c, len(pair.Pathways))
	}
	return nil
}
