package topicmodel

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// LDAConfig carries the hyperparameters shared by every fit in a sweep.
// Zero values fall back to library defaults (Alpha and Eta default to 1/k).
type LDAConfig struct {
	Iterations int
	Alpha      float64
	Eta        float64
	BatchSize  int
	// Seed, when non-zero, makes fits reproducible. Seeded fits run
	// single-process: the library's parallel sampler is only deterministic
	// with one worker.
	Seed uint64
}

// DefaultLDAIterations bounds the variational updates per fit.
const DefaultLDAIterations = 100

// LDAFitter fits topic models via james-bowman/nlp online LDA.
type LDAFitter struct {
	cfg LDAConfig
}

// NewLDAFitter builds a fitter with the given hyperparameters.
func NewLDAFitter(cfg LDAConfig) *LDAFitter {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultLDAIterations
	}
	return &LDAFitter{cfg: cfg}
}

// Fit trains a k-topic LDA model on the term-document matrix m. The context
// is checked before the (uninterruptible) library call; per-fit timeouts are
// enforced by the caller.
func (f *LDAFitter) Fit(ctx context.Context, m mat.Matrix, k int) (Model, error) {
	if k < 1 {
		return nil, fmt.Errorf("lda: topic count %d out of range", k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lda := nlp.NewLatentDirichletAllocation(k)
	lda.Iterations = f.cfg.Iterations
	if f.cfg.Alpha > 0 {
		lda.Alpha = f.cfg.Alpha
	}
	if f.cfg.Eta > 0 {
		lda.Eta = f.cfg.Eta
	}
	if f.cfg.BatchSize > 0 {
		lda.BatchSize = f.cfg.BatchSize
	}
	if f.cfg.Seed != 0 {
		lda.Rnd = rand.New(rand.NewSource(f.cfg.Seed))
		lda.Processes = 1
	} else {
		lda.Processes = runtime.GOMAXPROCS(0)
	}

	if _, err := lda.FitTransform(m); err != nil {
		return nil, fmt.Errorf("lda fit (k=%d): %w", k, err)
	}
	return &ldaModel{lda: lda}, nil
}

type ldaModel struct {
	lda *nlp.LatentDirichletAllocation
}

func (m *ldaModel) Perplexity(test mat.Matrix) float64 {
	return m.lda.Perplexity(test)
}

// ValidPerplexity reports whether a score is usable: finite and non-negative.
func ValidPerplexity(score float64) bool {
	return !math.IsNaN(score) && !math.IsInf(score, 0) && score >= 0
}
