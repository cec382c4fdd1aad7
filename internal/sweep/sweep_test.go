package sweep_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"themescope/internal/sweep"
	"themescope/internal/topicmodel"
)

type stubModel struct {
	score float64
}

func (m stubModel) Perplexity(mat.Matrix) float64 { return m.score }

// scoreByK fits instantly after a random delay, so workers finish out of
// order while scores stay a pure function of K.
func scoreByK(scores map[int]float64) topicmodel.Fitter {
	return topicmodel.FitterFunc(func(ctx context.Context, m mat.Matrix, k int) (topicmodel.Model, error) {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
		score, ok := scores[k]
		if !ok {
			return nil, fmt.Errorf("no fit for k=%d", k)
		}
		return stubModel{score: score}, nil
	})
}

func trainTest() (mat.Matrix, mat.Matrix) {
	train := mat.NewDense(3, 4, nil)
	test := mat.NewDense(3, 1, nil)
	return train, test
}

func TestRunReturnsAscendingCurveRegardlessOfExecutionOrder(t *testing.T) {
	train, test := trainTest()
	fitter := scoreByK(map[int]float64{2: 500, 3: 420, 4: 460})

	out, err := sweep.Run(context.Background(), fitter, train, test, []int{2, 3, 4}, sweep.Options{Workers: 3})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(out.Curve) != 3 {
		t.Fatalf("curve length = %d, want 3", len(out.Curve))
	}
	for i, want := range []sweep.Point{{K: 2, Perplexity: 500}, {K: 3, Perplexity: 420}, {K: 4, Perplexity: 460}} {
		if out.Curve[i] != want {
			t.Fatalf("curve[%d] = %+v, want %+v", i, out.Curve[i], want)
		}
	}
}

func TestRunRecordsPerKFailuresWithoutAborting(t *testing.T) {
	train, test := trainTest()
	fitter := scoreByK(map[int]float64{2: 500, 4: 460}) // k=3 fails

	out, err := sweep.Run(context.Background(), fitter, train, test, []int{2, 3, 4}, sweep.Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(out.Curve) != 2 {
		t.Fatalf("curve length = %d, want 2 (k=3 missing)", len(out.Curve))
	}
	if out.Curve[0].K != 2 || out.Curve[1].K != 4 {
		t.Fatalf("unexpected curve: %+v", out.Curve)
	}
	if len(out.Failures) != 1 || out.Failures[0].K != 3 {
		t.Fatalf("unexpected failures: %+v", out.Failures)
	}
}

func TestRunFailsWhenEveryKFails(t *testing.T) {
	train, test := trainTest()
	fitter := topicmodel.FitterFunc(func(ctx context.Context, m mat.Matrix, k int) (topicmodel.Model, error) {
		return nil, errors.New("diverged")
	})

	_, err := sweep.Run(context.Background(), fitter, train, test, []int{2, 3}, sweep.Options{})
	if !errors.Is(err, sweep.ErrAllFitsFailed) {
		t.Fatalf("expected ErrAllFitsFailed, got %v", err)
	}
}

func TestRunRejectsNonFinitePerplexity(t *testing.T) {
	train, test := trainTest()
	fitter := topicmodel.FitterFunc(func(ctx context.Context, m mat.Matrix, k int) (topicmodel.Model, error) {
		return stubModel{score: -1}, nil
	})

	_, err := sweep.Run(context.Background(), fitter, train, test, []int{2}, sweep.Options{})
	if !errors.Is(err, sweep.ErrAllFitsFailed) {
		t.Fatalf("expected ErrAllFitsFailed for invalid scores, got %v", err)
	}
}

func TestRunConvertsFitPanicsToFailures(t *testing.T) {
	train, test := trainTest()
	fitter := topicmodel.FitterFunc(func(ctx context.Context, m mat.Matrix, k int) (topicmodel.Model, error) {
		if k == 3 {
			panic("singular matrix")
		}
		return stubModel{score: 100}, nil
	})

	out, err := sweep.Run(context.Background(), fitter, train, test, []int{2, 3}, sweep.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(out.Failures) != 1 || out.Failures[0].K != 3 {
		t.Fatalf("expected a recorded failure for k=3, got %+v", out.Failures)
	}
}

func TestRunEnforcesFitTimeout(t *testing.T) {
	train, test := trainTest()
	fitter := topicmodel.FitterFunc(func(ctx context.Context, m mat.Matrix, k int) (topicmodel.Model, error) {
		if k == 3 {
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return stubModel{score: 100}, nil
	})

	out, err := sweep.Run(context.Background(), fitter, train, test, []int{2, 3}, sweep.Options{
		FitTimeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(out.Failures) != 1 || out.Failures[0].K != 3 {
		t.Fatalf("expected timeout failure for k=3, got %+v", out.Failures)
	}
}

func TestValidateCandidates(t *testing.T) {
	tests := []struct {
		name    string
		ks      []int
		wantErr bool
	}{
		{"valid", []int{2, 3, 4}, false},
		{"single", []int{1}, false},
		{"empty", nil, true},
		{"zero k", []int{0, 2}, true},
		{"duplicate", []int{2, 2}, true},
		{"descending", []int{4, 3}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := sweep.ValidateCandidates(tc.ks)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateCandidates(%v) error = %v, wantErr %v", tc.ks, err, tc.wantErr)
			}
		})
	}
}
