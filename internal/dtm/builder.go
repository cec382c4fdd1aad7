// Package dtm builds sparse document-term matrices from aggregated term
// counts and re-aligns them to a reference vocabulary.
//
// Matrices are stored with terms as rows and documents as columns, the
// orientation the topic-modeling library consumes. Columns cover exactly the
// documents of the requested subset that carry at least one surviving term;
// rows cover exactly the lemmas observed within that subset, never the full
// corpus vocabulary. Alignment to a shared vocabulary is a separate, explicit
// step (AlignTo) because train and test subsets generally observe different
// term sets.
package dtm

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"themescope/internal/termfreq"
)

// Matrix is a sparse term-document count matrix with its row and column
// labels. Terms index rows, Docs index columns.
type Matrix struct {
	Terms  []string
	Docs   []string
	counts *sparse.CSR
}

// Build assembles the matrix for the given document subset from aggregated
// counts. Documents absent from the counts (or with zero surviving terms)
// are omitted rather than zero-filled; an entirely empty subset is an error.
func Build(c *termfreq.Counts, docs []string) (*Matrix, error) {
	present := make([]string, 0, len(docs))
	for _, id := range docs {
		if len(c.ByDoc[id]) > 0 {
			present = append(present, id)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("document-term matrix: no documents with surviving terms in subset of %d", len(docs))
	}
	sort.Strings(present)

	terms := c.Lemmas(present...)
	termIdx := make(map[string]int, len(terms))
	for i, t := range terms {
		termIdx[t] = i
	}

	dok := sparse.NewDOK(len(terms), len(present))
	for j, id := range present {
		for lemma, count := range c.ByDoc[id] {
			dok.Set(termIdx[lemma], j, float64(count))
		}
	}

	return &Matrix{Terms: terms, Docs: present, counts: dok.ToCSR()}, nil
}

// Counts exposes the underlying sparse matrix for numeric consumers.
func (m *Matrix) Counts() mat.Matrix { return m.counts }

// Dims returns (terms, documents).
func (m *Matrix) Dims() (int, int) { return len(m.Terms), len(m.Docs) }

// At returns the raw count for the term and document at the given indices.
func (m *Matrix) At(term, doc int) float64 { return m.counts.At(term, doc) }
