// Package topicmodel defines the external model-fitting capability the sweep
// depends on and supplies the production adapter over the james-bowman/nlp
// Latent Dirichlet Allocation implementation.
//
// The sweep never touches inference internals: it hands a term-document count
// matrix and a topic count to a Fitter and reads back a Model that can score
// held-out data. Swapping the modeling library means writing another Fitter.
package topicmodel

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Model is a fitted topic model able to score held-out documents.
type Model interface {
	// Perplexity returns the held-out perplexity of m, which must share the
	// vocabulary (row order) the model was trained on. Lower is better.
	Perplexity(m mat.Matrix) float64
}

// Fitter fits a topic-mixture model with k topics to a term-document count
// matrix. Implementations must be safe for concurrent use: the sweep fits
// several k values at once.
type Fitter interface {
	Fit(ctx context.Context, m mat.Matrix, k int) (Model, error)
}

// FitterFunc adapts a function to the Fitter interface.
type FitterFunc func(ctx context.Context, m mat.Matrix, k int) (Model, error)

// Fit implements Fitter.
func (f FitterFunc) Fit(ctx context.Context, m mat.Matrix, k int) (Model, error) {
	return f(ctx, m, k)
}
