package omics

import "errors"

// Sentinel errors shared by every stage of the scoring pipeline. Callers match
// them with errors.Is; stages wrap them with column or pathway context.
var (
	// ErrInvalidParameter is returned for nonsensical run parameters
	// (k <= 0, nil inputs, bad worker or batch counts).
	ErrInvalidParameter = errors.New("omics: invalid parameter")

	// ErrInvalidWeightMatrix signals duplicate or malformed identifiers,
	// duplicate pathway names or non-finite coefficients in a weight matrix.
	ErrInvalidWeightMatrix = errors.New("omics: invalid weight matrix")

	// ErrInvalidFeatureMatrix signals a malformed feature matrix, including
	// duplicate feature IDs that survive a column's complete-case filter.
	ErrInvalidFeatureMatrix = errors.New("omics: invalid feature matrix")

	// ErrNoCommonIdentifiers is returned when a column shares no feature
	// identifiers with the weight matrix after missing values are dropped.
	ErrNoCommonIdentifiers = errors.New("omics: no common identifiers")

	// ErrDegenerateNullDistribution is returned in z-score mode when a null
	// row has zero (or undefined) variance.
	ErrDegenerateNullDistribution = errors.New("omics: degenerate null distribution")

	// ErrNonFiniteScore is returned instead of emitting a NaN or ±Inf result.
	ErrNonFiniteScore = errors.New("omics: non-finite score")
)
