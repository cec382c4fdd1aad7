// Package corpus defines the document and token data model and reads
// precomputed lemmatizer output from disk.
//
// Tokens arrive as tab-separated rows of (document_id, surface_form, lemma,
// part_of_speech), one token per line, produced by an external
// tokenizer/lemmatizer. The package performs a single scoped read per run;
// nothing here mutates tokens after load.
package corpus

// Document identifies one corpus document. Only the identity matters to the
// analysis core; the abstract text and metadata live with the ingester.
type Document struct {
	ID    string
	Title string
}

// Token is one lemmatized token emitted by the external lemmatizer.
// Immutable after load.
type Token struct {
	DocID        string
	Surface      string
	Lemma        string
	PartOfSpeech string
}

// DocumentIDs returns the distinct document IDs present in tokens, in first
// appearance order.
func DocumentIDs(tokens []Token) []string {
	seen := make(map[string]struct{}, 64)
	ids := make([]string, 0, 64)
	for _, tok := range tokens {
		if _, ok := seen[tok.DocID]; ok {
			continue
		}
		seen[tok.DocID] = struct{}{}
		ids = append(ids, tok.DocID)
	}
	return ids
}
