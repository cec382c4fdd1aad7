// Package vocab filters the lemmatized token stream down to a controlled
// vocabulary.
//
// Two presets exist and stay separate: the frequency preset feeds coarse
// term-frequency views and drops tokens containing digits or percent signs,
// while the matrix preset feeds document-term-matrix construction and
// additionally strips non-alphabetic runes from the lemma before the length
// check. Both drop stopwords, punctuation-tagged tokens, and lemmas shorter
// than the configured minimum after lowercasing.
package vocab

import "themescope/internal/corpus"

// DefaultMinLemmaLength is the shortest lemma admitted to the vocabulary.
const DefaultMinLemmaLength = 3

// punctTags are part-of-speech tags marking punctuation in Universal
// Dependencies and Penn-style tagsets.
var punctTags = map[string]struct{}{
	"PUNCT": {}, "SYM": {}, ".": {}, ",": {}, ":": {}, "``": {}, "''": {},
	"-LRB-": {}, "-RRB-": {}, "HYPH": {},
}

// Filter decides which tokens enter the controlled vocabulary and produces
// the canonical lemma for the ones that survive.
type Filter struct {
	stopwords    map[string]struct{}
	minLength    int
	dropNumeric  bool
	stripLetters bool
}

// Option customizes a preset.
type Option func(*Filter)

// WithExtraStopwords adds corpus-specific stop lemmas on top of the default
// English list. Matching is case-insensitive.
func WithExtraStopwords(words []string) Option {
	return func(f *Filter) {
		for _, w := range words {
			w = normalizeLemma(w)
			if w != "" {
				f.stopwords[w] = struct{}{}
			}
		}
	}
}

// WithMinLemmaLength overrides the minimum admitted lemma length.
func WithMinLemmaLength(n int) Option {
	return func(f *Filter) {
		if n > 0 {
			f.minLength = n
		}
	}
}

// FrequencyPreset builds the filter used for raw frequency views and TF-IDF.
// It drops tokens containing digit or percent characters outright.
func FrequencyPreset(opts ...Option) *Filter {
	f := newFilter()
	f.dropNumeric = true
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// MatrixPreset builds the filter used for document-term-matrix construction.
// It strips non-alphabetic runes from the lemma before the length check, so
// numeric and mixed tokens reduce to their alphabetic core or vanish.
func MatrixPreset(opts ...Option) *Filter {
	f := newFilter()
	f.stripLetters = true
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func newFilter() *Filter {
	stop := make(map[string]struct{}, len(defaultStopwords))
	for w := range defaultStopwords {
		stop[w] = struct{}{}
	}
	return &Filter{stopwords: stop, minLength: DefaultMinLemmaLength}
}

// Normalize returns the canonical lemma for tok and whether the token
// survives the filter.
func (f *Filter) Normalize(tok corpus.Token) (string, bool) {
	if _, ok := punctTags[tok.PartOfSpeech]; ok {
		return "", false
	}
	lemma := normalizeLemma(tok.Lemma)
	if lemma == "" || isAllPunct(lemma) {
		return "", false
	}
	if _, ok := f.stopwords[lemma]; ok {
		return "", false
	}
	if f.dropNumeric && (containsDigitOrPercent(lemma) || containsDigitOrPercent(tok.Surface)) {
		return "", false
	}
	if f.stripLetters {
		lemma = stripNonAlpha(lemma)
	}
	if len([]rune(lemma)) < f.minLength {
		return "", false
	}
	return lemma, true
}

// Apply filters tokens, returning surviving tokens with canonical lemmas.
func (f *Filter) Apply(tokens []corpus.Token) []corpus.Token {
	kept := make([]corpus.Token, 0, len(tokens))
	for _, tok := range tokens {
		lemma, ok := f.Normalize(tok)
		if !ok {
			continue
		}
		tok.Lemma = lemma
		kept = append(kept, tok)
	}
	return kept
}
