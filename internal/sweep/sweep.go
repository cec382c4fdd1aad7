// Package sweep fits a topic model for every candidate topic count K,
// measures held-out perplexity for each, and selects the best K.
//
// Fitting different K values shares no mutable state, so the sweep runs them
// on a bounded worker pool and merges results into ascending-K order
// afterwards. One pathological K must not sink the run: each fit gets an
// optional timeout, failures are recorded per K, and only a sweep in which
// every K failed is a hard error.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"themescope/internal/topicmodel"
)

// Point is one measured (K, perplexity) pair.
type Point struct {
	K          int     `json:"k"`
	Perplexity float64 `json:"perplexity"`
}

// Curve is the perplexity curve in ascending-K order. Failed K values are
// absent, not zero-filled.
type Curve []Point

// FitFailure records a K whose fit or evaluation failed.
type FitFailure struct {
	K   int
	Err error
}

func (f FitFailure) Error() string {
	return fmt.Sprintf("fit failed for k=%d: %v", f.K, f.Err)
}

// ErrAllFitsFailed marks a sweep in which no candidate K produced a score.
var ErrAllFitsFailed = errors.New("every candidate topic count failed to fit")

// Options tunes sweep execution.
type Options struct {
	// Workers bounds concurrent fits; ≤0 means GOMAXPROCS.
	Workers int
	// FitTimeout bounds one fit+evaluation; 0 disables the timeout.
	FitTimeout time.Duration
	Logger     *slog.Logger
}

// Outcome is the result of one sweep.
type Outcome struct {
	Curve    Curve
	Failures []FitFailure
}

// ValidateCandidates checks the candidate K list: non-empty, strictly
// ascending, every value ≥ 1.
func ValidateCandidates(ks []int) error {
	if len(ks) == 0 {
		return errors.New("sweep: empty candidate list")
	}
	for i, k := range ks {
		if k < 1 {
			return fmt.Errorf("sweep: candidate k=%d out of range", k)
		}
		if i > 0 && k <= ks[i-1] {
			return fmt.Errorf("sweep: candidates must be strictly ascending, got %d after %d", k, ks[i-1])
		}
	}
	return nil
}

// Run fits every candidate K on train and scores it on test. The test matrix
// must already be aligned to the training vocabulary. Results arrive in
// ascending-K order regardless of which worker finished first.
func Run(ctx context.Context, fitter topicmodel.Fitter, train, test mat.Matrix, ks []int, opts Options) (*Outcome, error) {
	if err := ValidateCandidates(ks); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(ks) {
		workers = len(ks)
	}

	type result struct {
		point   Point
		failure *FitFailure
	}

	jobs := make(chan int)
	results := make(chan result, len(ks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				start := time.Now()
				score, err := fitOne(ctx, fitter, train, test, k, opts.FitTimeout)
				if err != nil {
					logger.Warn("topic fit failed",
						slog.Int("k", k),
						slog.Duration("elapsed", time.Since(start)),
						slog.Any("error", err))
					results <- result{failure: &FitFailure{K: k, Err: err}}
					continue
				}
				logger.Info("topic fit complete",
					slog.Int("k", k),
					slog.Float64("perplexity", score),
					slog.Duration("elapsed", time.Since(start)))
				results <- result{point: Point{K: k, Perplexity: score}}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, k := range ks {
			select {
			case jobs <- k:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	out := &Outcome{}
	for res := range results {
		if res.failure != nil {
			out.Failures = append(out.Failures, *res.failure)
			continue
		}
		out.Curve = append(out.Curve, res.point)
	}
	sort.Slice(out.Curve, func(i, j int) bool { return out.Curve[i].K < out.Curve[j].K })
	sort.Slice(out.Failures, func(i, j int) bool { return out.Failures[i].K < out.Failures[j].K })

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(out.Curve) == 0 {
		return nil, fmt.Errorf("%w: %d candidates", ErrAllFitsFailed, len(ks))
	}
	return out, nil
}

// fitOne trains and scores a single K, converting panics from the modeling
// library into errors and enforcing the per-fit timeout.
func fitOne(ctx context.Context, fitter topicmodel.Fitter, train, test mat.Matrix, k int, timeout time.Duration) (score float64, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type fitResult struct {
		score float64
		err   error
	}
	done := make(chan fitResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fitResult{err: fmt.Errorf("modeling library panic: %v", r)}
			}
		}()
		model, fitErr := fitter.Fit(ctx, train, k)
		if fitErr != nil {
			done <- fitResult{err: fitErr}
			return
		}
		s := model.Perplexity(test)
		if !topicmodel.ValidPerplexity(s) {
			done <- fitResult{err: fmt.Errorf("perplexity %v is not a finite non-negative score", s)}
			return
		}
		done <- fitResult{score: s}
	}()

	select {
	case res := <-done:
		return res.score, res.err
	case <-ctx.Done():
		return 0, fmt.Errorf("fit timed out: %w", ctx.Err())
	}
}
