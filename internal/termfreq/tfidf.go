package termfreq

import (
	"fmt"
	"math"
	"sort"
)

// Record is one TF-IDF table row. TF is in [0,1], IDF ≥ 0, and
// TFIDF = TF × IDF.
type Record struct {
	DocID string  `json:"document_id"`
	Lemma string  `json:"lemma"`
	TF    float64 `json:"tf"`
	IDF   float64 `json:"idf"`
	TFIDF float64 `json:"tfidf"`
}

// EmptyDocumentError reports a document with zero surviving tokens reaching
// the tf computation. Not recoverable locally; the caller decides whether to
// drop the document or abort.
type EmptyDocumentError struct {
	DocID string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("document %q has no surviving tokens; tf undefined", e.DocID)
}

// ComputeTfIdf derives the full TF-IDF table from aggregated counts.
//
// tf(t,d) = term_ct(t,d) / word_ct(d); idf(t) = ln(N / n_t) with N the number
// of documents carrying at least one surviving term and n_t the number of
// documents containing t. Rows are ordered by document then lemma.
func ComputeTfIdf(c *Counts) ([]Record, error) {
	docs := c.Documents()
	n := len(docs)
	if n == 0 {
		return nil, nil
	}

	docFreq := make(map[string]int)
	for _, id := range docs {
		for lemma := range c.ByDoc[id] {
			docFreq[lemma]++
		}
	}

	records := make([]Record, 0, len(docFreq)*2)
	for _, id := range docs {
		wordCt := c.WordCt[id]
		if wordCt == 0 {
			return nil, &EmptyDocumentError{DocID: id}
		}
		terms := c.ByDoc[id]
		lemmas := make([]string, 0, len(terms))
		for lemma := range terms {
			lemmas = append(lemmas, lemma)
		}
		sort.Strings(lemmas)
		for _, lemma := range lemmas {
			tf := float64(terms[lemma]) / float64(wordCt)
			idf := math.Log(float64(n) / float64(docFreq[lemma]))
			records = append(records, Record{
				DocID: id,
				Lemma: lemma,
				TF:    tf,
				IDF:   idf,
				TFIDF: tf * idf,
			})
		}
	}
	return records, nil
}

// TopByDoc returns the limit highest-weighted records per document, each
// document's slice sorted by descending TFIDF with lemma as tiebreak.
func TopByDoc(records []Record, limit int) map[string][]Record {
	byDoc := make(map[string][]Record)
	for _, rec := range records {
		byDoc[rec.DocID] = append(byDoc[rec.DocID], rec)
	}
	for id, recs := range byDoc {
		sort.Slice(recs, func(i, j int) bool {
			if recs[i].TFIDF != recs[j].TFIDF {
				return recs[i].TFIDF > recs[j].TFIDF
			}
			return recs[i].Lemma < recs[j].Lemma
		})
		if limit > 0 && len(recs) > limit {
			recs = recs[:limit]
		}
		byDoc[id] = recs
	}
	return byDoc
}
