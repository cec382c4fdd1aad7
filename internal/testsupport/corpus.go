package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"themescope/internal/corpus"
)

// Tokens builds a token stream from doc id → space-separated lemmas. Each
// lemma doubles as its own surface form with a NOUN tag, which passes both
// vocabulary presets as long as the lemma is alphabetic and long enough.
func Tokens(docs map[string]string) []corpus.Token {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	// Deterministic stream order.
	sort.Strings(ids)

	var tokens []corpus.Token
	for _, id := range ids {
		for _, lemma := range strings.Fields(docs[id]) {
			tokens = append(tokens, corpus.Token{
				DocID:        id,
				Surface:      lemma,
				Lemma:        lemma,
				PartOfSpeech: "NOUN",
			})
		}
	}
	return tokens
}

// WriteTokenFile writes docs as a tab-separated token file under a temp
// directory and returns its path.
func WriteTokenFile(t testing.TB, docs map[string]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("# doc_id\tsurface\tlemma\tpos\n")
	for _, tok := range Tokens(docs) {
		b.WriteString(tok.DocID)
		b.WriteByte('\t')
		b.WriteString(tok.Surface)
		b.WriteByte('\t')
		b.WriteString(tok.Lemma)
		b.WriteByte('\t')
		b.WriteString(tok.PartOfSpeech)
		b.WriteByte('\n')
	}

	path := filepath.Join(t.TempDir(), "tokens.tsv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	return path
}
