// Package pathway scores pathway activity for every sample of a feature
// matrix against a feature-to-pathway weight matrix, judging each raw score
// against a permutation null distribution.
package pathway

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/RyanBlaney/pathscore/algorithms/alignment"
	"github.com/RyanBlaney/pathscore/algorithms/scoring"
	"github.com/RyanBlaney/pathscore/algorithms/stats"
	"github.com/RyanBlaney/pathscore/logging"
	"github.com/RyanBlaney/pathscore/omics"
	"github.com/RyanBlaney/pathscore/pathway/config"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// ColumnResult is the outcome of scoring one sample column
type ColumnResult struct {
	Sample   string                    `json:"sample"`
	Index    int                       `json:"index"`
	Features int                       `json:"features"` // aligned feature count
	Raw      []float64                 `json:"raw"`      // W · v per pathway
	Scores   []float64                 `json:"scores"`   // normalized per pathway
	Null     *scoring.NullDistribution `json:"-"`
}

// Engine runs the align → score → null → normalize pipeline per column
type Engine struct {
	config     *config.Config
	aligner    *alignment.Aligner
	generator  *scoring.Generator
	normalizer *stats.Normalizer
	sources    scoring.SourceFactory
	logger     logging.Logger
}

// Option customizes an Engine
type Option func(*Engine)

// WithLogger routes engine logs to logger instead of the global logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.WithFields(logging.Fields{"component": "pathway_engine"})
		}
	}
}

// WithSourceFactory injects the permutation source. It overrides
// config.Seed; each column receives the stream numbered by its index.
func WithSourceFactory(sources scoring.SourceFactory) Option {
	return func(e *Engine) {
		e.sources = sources
	}
}

// NewEngine validates cfg and builds an engine. A nil cfg uses
// config.DefaultConfig().
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfgCopy := *cfg

	e := &Engine{
		config: &cfgCopy,
		logger: logging.WithFields(logging.Fields{"component": "pathway_engine"}),
	}
	for _, opt := range opts {
		opt(e)
	}

	generator, err := scoring.NewGenerator(cfgCopy.Iterations, cfgCopy.BatchSize)
	if err != nil {
		return nil, err
	}
	e.generator = generator.WithLogger(e.logger)
	e.aligner = alignment.NewAlignerWithLogger(e.logger)

	method := stats.QuantileSignificance
	if cfgCopy.ZScores {
		method = stats.ZScore
	}
	e.normalizer = stats.NewNormalizer(method)

	return e, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() config.Config { return *e.config }

// Score is a one-call shortcut for NewEngine(cfg, opts...).Run
func Score(ctx context.Context, data *omics.FeatureMatrix, weights *omics.WeightMatrix, cfg *config.Config, opts ...Option) (Result, error) {
	engine, err := NewEngine(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx, data, weights)
}

// sourceFactory returns the injected factory, or seeded PCG streams. The
// seed is reported so unseeded runs can be replayed.
func (e *Engine) sourceFactory() (scoring.SourceFactory, *uint64) {
	if e.sources != nil {
		return e.sources, nil
	}
	var seed uint64
	if e.config.Seed != nil {
		seed = *e.config.Seed
	} else {
		seed = rand.Uint64()
	}
	return scoring.SeededSource(seed), &seed
}

// ScoreColumn scores a single sample column
func (e *Engine) ScoreColumn(ctx context.Context, data *omics.FeatureMatrix, col int, weights *omics.WeightMatrix) (*ColumnResult, error) {
	if data == nil || weights == nil {
		return nil, fmt.Errorf("%w: feature and weight matrices are required", omics.ErrInvalidParameter)
	}
	if col < 0 || col >= data.NumSamples() {
		return nil, fmt.Errorf("%w: column %d out of range [0,%d)", omics.ErrInvalidParameter, col, data.NumSamples())
	}
	sources, seed := e.sourceFactory()
	if seed != nil {
		e.logger.Info("Scoring single column", logging.Fields{
			"sample": data.Sample(col),
			"seed":   *seed,
		})
	}
	return e.scoreColumn(ctx, data, col, weights, sources(uint64(col)))
}

func (e *Engine) scoreColumn(ctx context.Context, data *omics.FeatureMatrix, col int, weights *omics.WeightMatrix, perm scoring.Permuter) (*ColumnResult, error) {
	pair, err := e.aligner.Align(data, col, weights)
	if err != nil {
		return nil, err
	}

	raw, err := scoring.Score(pair)
	if err != nil {
		return nil, err
	}

	null, err := e.generator.Generate(ctx, pair, perm)
	if err != nil {
		return nil, err
	}

	scores, err := e.normalizer.NormalizeRows(raw, null.Scores, pair.Pathways)
	if err != nil {
		return nil, err
	}

	return &ColumnResult{
		Sample:   pair.Sample,
		Index:    col,
		Features: pair.Len(),
		Raw:      append([]float64(nil), raw.RawVector().Data...),
		Scores:   scores,
		Null:     null,
	}, nil
}

// Run scores every column of data. Columns are independent: each draws from
// its own permutation stream and writes only its own result slot, so the
// outcome does not depend on Workers. The context is checked before every
// column and between null-distribution batches.
func (e *Engine) Run(ctx context.Context, data *omics.FeatureMatrix, weights *omics.WeightMatrix) (Result, error) {
	if data == nil || weights == nil {
		return nil, fmt.Errorf("%w: feature and weight matrices are required", omics.ErrInvalidParameter)
	}

	start := time.Now()
	sources, seed := e.sourceFactory()
	numSamples := data.NumSamples()

	logger := e.logger.WithFields(logging.Fields{"run_id": uuid.NewString()})
	runFields := logging.Fields{
		"samples":    numSamples,
		"pathways":   weights.NumPathways(),
		"iterations": e.config.Iterations,
		"method":     e.normalizer.Method().String(),
		"workers":    e.config.Workers,
	}
	if seed != nil {
		runFields["seed"] = *seed
	}
	logger.Info("Starting permutation scoring", runFields)

	columns := make([]*ColumnResult, numSamples)
	failures := make([]error, numSamples)

	scoreOne := func(ctx context.Context, col int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := e.scoreColumn(ctx, data, col, weights, sources(uint64(col)))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			colErr := &ColumnError{Sample: data.Sample(col), Index: col, Err: err}
			if e.config.ErrorPolicy == config.FailFast {
				return colErr
			}
			logger.Warn("Skipping failed column", logging.Fields{
				"sample": colErr.Sample,
				"error":  err.Error(),
			})
			failures[col] = colErr
			return nil
		}

		logger.Debug("Scored column", logging.Fields{
			"sample":   res.Sample,
			"features": res.Features,
		})
		if !e.config.GetNullDist {
			res.Null = nil
		}
		columns[col] = res
		return nil
	}

	var err error
	if e.config.Workers > 1 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(e.config.Workers)
		for col := 0; col < numSamples; col++ {
			g.Go(func() error {
				return scoreOne(gCtx, col)
			})
		}
		err = g.Wait()
	} else {
		for col := 0; col < numSamples; col++ {
			if err = scoreOne(ctx, col); err != nil {
				break
			}
		}
	}
	if err != nil {
		logger.Error(err, "Permutation scoring failed")
		return nil, err
	}

	result, err := e.assemble(data, weights, columns, failures)
	if err != nil {
		logger.Error(err, "Permutation scoring failed")
		return nil, err
	}

	logger.Info("Permutation scoring completed", logging.Fields{
		"scored":      len(result.Table().Samples),
		"failed":      len(result.Failures()),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result, nil
}

// assemble builds the result in column order from the per-column slots
func (e *Engine) assemble(data *omics.FeatureMatrix, weights *omics.WeightMatrix, columns []*ColumnResult, failures []error) (Result, error) {
	failed := make(map[string]error)
	var errs []error
	for col, err := range failures {
		if err != nil {
			failed[data.Sample(col)] = err
			errs = append(errs, err)
		}
	}

	scored := make([]*ColumnResult, 0, len(columns))
	for _, c := range columns {
		if c != nil {
			scored = append(scored, c)
		}
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("all %d columns failed: %w", len(columns), errors.Join(errs...))
	}

	pathways := weights.Pathways()
	table := &ScoreTable{
		Samples:  make([]string, len(scored)),
		Pathways: pathways,
		Values:   mat.NewDense(len(scored), len(pathways), nil),
	}
	for i, c := range scored {
		table.Samples[i] = c.Sample
		table.Values.SetRow(i, c.Scores)
	}

	base := ScoresResult{table: table, failures: failed}
	if !e.config.GetNullDist {
		return &base, nil
	}

	nulls := make(map[string]*scoring.NullDistribution, len(scored))
	for _, c := range scored {
		nulls[c.Sample] = c.Null
	}
	return &ScoresWithNullResult{ScoresResult: base, NullDistributions: nulls}, nil
}
