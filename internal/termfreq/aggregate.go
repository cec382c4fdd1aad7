// Package termfreq aggregates per-document term counts from the filtered
// token stream and computes TF-IDF weights over them.
package termfreq

import (
	"sort"

	"themescope/internal/corpus"
	"themescope/internal/vocab"
)

// TermCount is one (document, lemma) raw count row. Count is always ≥ 1.
type TermCount struct {
	DocID string
	Lemma string
	Count int
}

// Counts holds the aggregated frequency tables for one corpus pass.
type Counts struct {
	// ByDoc maps document id → lemma → raw count.
	ByDoc map[string]map[string]int
	// WordCt maps document id → total surviving tokens. Documents whose
	// every token was filtered out never appear here.
	WordCt map[string]int
}

// Aggregate counts surviving tokens per (document, lemma) under the given
// filter. Documents with zero surviving tokens contribute no rows.
func Aggregate(tokens []corpus.Token, filter *vocab.Filter) *Counts {
	c := &Counts{
		ByDoc:  make(map[string]map[string]int),
		WordCt: make(map[string]int),
	}
	for _, tok := range tokens {
		lemma, ok := filter.Normalize(tok)
		if !ok {
			continue
		}
		terms := c.ByDoc[tok.DocID]
		if terms == nil {
			terms = make(map[string]int)
			c.ByDoc[tok.DocID] = terms
		}
		terms[lemma]++
		c.WordCt[tok.DocID]++
	}
	return c
}

// Documents returns the document ids with at least one surviving term,
// sorted lexicographically.
func (c *Counts) Documents() []string {
	docs := make([]string, 0, len(c.ByDoc))
	for id := range c.ByDoc {
		docs = append(docs, id)
	}
	sort.Strings(docs)
	return docs
}

// Lemmas returns the distinct lemmas observed across the given documents,
// sorted lexicographically. With no arguments it covers every document.
func (c *Counts) Lemmas(docs ...string) []string {
	if len(docs) == 0 {
		docs = c.Documents()
	}
	seen := make(map[string]struct{})
	for _, id := range docs {
		for lemma := range c.ByDoc[id] {
			seen[lemma] = struct{}{}
		}
	}
	lemmas := make([]string, 0, len(seen))
	for lemma := range seen {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	return lemmas
}

// Rows flattens the counts into TermCount rows ordered by document then lemma.
func (c *Counts) Rows() []TermCount {
	rows := make([]TermCount, 0, len(c.ByDoc)*8)
	for _, id := range c.Documents() {
		terms := c.ByDoc[id]
		lemmas := make([]string, 0, len(terms))
		for lemma := range terms {
			lemmas = append(lemmas, lemma)
		}
		sort.Strings(lemmas)
		for _, lemma := range lemmas {
			rows = append(rows, TermCount{DocID: id, Lemma: lemma, Count: terms[lemma]})
		}
	}
	return rows
}
