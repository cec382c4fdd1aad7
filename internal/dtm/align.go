package dtm

import "github.com/james-bowman/sparse"

// Mismatch describes how a matrix's vocabulary diverged from the reference
// vocabulary it was aligned to. Callers must surface a non-empty mismatch;
// silently evaluating across mismatched vocabularies corrupts perplexity.
type Mismatch struct {
	// Dropped are terms present in the matrix but absent from the reference
	// vocabulary; their counts are discarded.
	Dropped []string
	// ZeroFilled are reference terms the matrix never observed; their rows
	// are all zeros after alignment.
	ZeroFilled []string
}

// Empty reports whether the vocabularies matched exactly.
func (d Mismatch) Empty() bool {
	return len(d.Dropped) == 0 && len(d.ZeroFilled) == 0
}

// AlignTo re-projects the matrix onto the given vocabulary, preserving its
// row order. Terms outside the vocabulary are dropped; vocabulary terms the
// matrix never observed become zero rows. The receiver is unchanged.
func (m *Matrix) AlignTo(vocabulary []string) (*Matrix, Mismatch) {
	rowIdx := make(map[string]int, len(m.Terms))
	for i, t := range m.Terms {
		rowIdx[t] = i
	}
	vocabSet := make(map[string]struct{}, len(vocabulary))
	for _, t := range vocabulary {
		vocabSet[t] = struct{}{}
	}

	var diag Mismatch
	for _, t := range m.Terms {
		if _, ok := vocabSet[t]; !ok {
			diag.Dropped = append(diag.Dropped, t)
		}
	}

	terms := make([]string, len(vocabulary))
	copy(terms, vocabulary)

	dok := sparse.NewDOK(len(terms), len(m.Docs))
	for i, t := range terms {
		src, ok := rowIdx[t]
		if !ok {
			diag.ZeroFilled = append(diag.ZeroFilled, t)
			continue
		}
		for j := range m.Docs {
			if v := m.counts.At(src, j); v != 0 {
				dok.Set(i, j, v)
			}
		}
	}

	return &Matrix{Terms: terms, Docs: m.Docs, counts: dok.ToCSR()}, diag
}
