// Package split partitions a document set into disjoint train and test
// subsets by seeded uniform sampling.
package split

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// DefaultTestFraction is the share of documents held out when the caller
// does not configure one.
const DefaultTestFraction = 0.2

// InvalidSplitError reports unusable split parameters.
type InvalidSplitError struct {
	Fraction float64
	DocCount int
	Reason   string
}

func (e *InvalidSplitError) Error() string {
	return fmt.Sprintf("invalid split (fraction=%g, documents=%d): %s", e.Fraction, e.DocCount, e.Reason)
}

// Split is a disjoint train/test partition. Train ∪ Test equals the input
// document set; both slices are sorted lexicographically.
type Split struct {
	Train []string
	Test  []string
}

// Partition draws ⌈fraction·N⌉ documents without replacement as the test set
// and returns the remainder as train. The same seed and fraction over the
// same document set always yield the same partition; input order does not
// matter. The x/exp/rand PCG source is seed-stable across platforms.
func Partition(docs []string, fraction float64, seed uint64) (*Split, error) {
	n := len(docs)
	switch {
	case fraction <= 0 || fraction >= 1:
		return nil, &InvalidSplitError{Fraction: fraction, DocCount: n, Reason: "test fraction must be in (0, 1)"}
	case n < 2:
		return nil, &InvalidSplitError{Fraction: fraction, DocCount: n, Reason: "need at least 2 documents"}
	}

	ordered := make([]string, n)
	copy(ordered, docs)
	sort.Strings(ordered)

	testSize := int(math.Ceil(fraction * float64(n)))
	if testSize >= n {
		return nil, &InvalidSplitError{Fraction: fraction, DocCount: n, Reason: "test fraction leaves no training documents"}
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	test := make([]string, 0, testSize)
	train := make([]string, 0, n-testSize)
	for i, idx := range perm {
		if i < testSize {
			test = append(test, ordered[idx])
		} else {
			train = append(train, ordered[idx])
		}
	}
	sort.Strings(test)
	sort.Strings(train)
	return &Split{Train: train, Test: test}, nil
}
