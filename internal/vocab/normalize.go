package vocab

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFKD, drops combining marks, and recomposes,
// so "fishérie" and "fisherie" normalize to the same lemma.
var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeLemma lowercases the lemma and strips diacritic marks. Returns the
// input unchanged (lowercased) when the transform fails on malformed input.
func normalizeLemma(lemma string) string {
	lowered := strings.ToLower(strings.TrimSpace(lemma))
	folded, _, err := transform.String(foldTransformer, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// stripNonAlpha removes every rune that is not a letter.
func stripNonAlpha(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsDigitOrPercent(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || r == '%' {
			return true
		}
	}
	return false
}

func isAllPunct(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
