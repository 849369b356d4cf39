package pathway

import (
	"fmt"

	"github.com/RyanBlaney/pathscore/omics"
)

// Re-exported so callers of this package can match failures with errors.Is
// without importing omics.
var (
	ErrInvalidParameter           = omics.ErrInvalidParameter
	ErrInvalidWeightMatrix        = omics.ErrInvalidWeightMatrix
	ErrInvalidFeatureMatrix       = omics.ErrInvalidFeatureMatrix
	ErrNoCommonIdentifiers        = omics.ErrNoCommonIdentifiers
	ErrDegenerateNullDistribution = omics.ErrDegenerateNullDistribution
	ErrNonFiniteScore             = omics.ErrNonFiniteScore
)

// ColumnError reports which sample column failed
type ColumnError struct {
	Sample string
	Index  int
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %d (%q): %v", e.Index, e.Sample, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }
