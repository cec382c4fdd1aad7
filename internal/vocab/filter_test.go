package vocab_test

import (
	"testing"

	"themescope/internal/corpus"
	"themescope/internal/vocab"
)

func tok(surface, lemma, pos string) corpus.Token {
	return corpus.Token{DocID: "d1", Surface: surface, Lemma: lemma, PartOfSpeech: pos}
}

func TestFrequencyPresetDropRules(t *testing.T) {
	filter := vocab.FrequencyPreset()

	tests := []struct {
		name  string
		token corpus.Token
		keep  bool
		want  string
	}{
		{"plain noun", tok("fisheries", "fishery", "NOUN"), true, "fishery"},
		{"stopword lemma", tok("The", "the", "DET"), false, ""},
		{"stopword case-insensitive", tok("THE", "The", "DET"), false, ""},
		{"punctuation tag", tok(",", ",", "PUNCT"), false, ""},
		{"all-punct lemma", tok("--", "--", "X"), false, ""},
		{"short lemma", tok("ok", "ok", "ADJ"), false, ""},
		{"digit in lemma", tok("2020", "2020", "NUM"), false, ""},
		{"percent token", tok("50%", "50%", "NUM"), false, ""},
		{"digit in surface only", tok("2nd-quarter", "quarter", "NOUN"), false, ""},
		{"diacritics folded", tok("Salmón", "salmón", "NOUN"), true, "salmon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lemma, keep := filter.Normalize(tc.token)
			if keep != tc.keep {
				t.Fatalf("keep = %v, want %v", keep, tc.keep)
			}
			if keep && lemma != tc.want {
				t.Fatalf("lemma = %q, want %q", lemma, tc.want)
			}
		})
	}
}

func TestMatrixPresetStripsNonAlphabeticBeforeLengthCheck(t *testing.T) {
	matrix := vocab.MatrixPreset()
	frequency := vocab.FrequencyPreset()

	// The matrix preset reduces mixed tokens to their alphabetic core; the
	// frequency preset drops them outright.
	token := tok("co2-level", "co2-level", "NOUN")

	lemma, keep := matrix.Normalize(token)
	if !keep || lemma != "colevel" {
		t.Fatalf("matrix preset: got (%q, %v), want (colevel, true)", lemma, keep)
	}
	if _, keep := frequency.Normalize(token); keep {
		t.Fatal("frequency preset should drop tokens containing digits")
	}

	// A numeric token reduces to nothing under the matrix preset.
	if _, keep := matrix.Normalize(tok("2020", "2020", "NUM")); keep {
		t.Fatal("matrix preset should drop purely numeric tokens")
	}
}

func TestFilterOptions(t *testing.T) {
	filter := vocab.FrequencyPreset(
		vocab.WithExtraStopwords([]string{"Fishery"}),
		vocab.WithMinLemmaLength(5),
	)

	if _, keep := filter.Normalize(tok("fisheries", "fishery", "NOUN")); keep {
		t.Fatal("extra stopword should be dropped")
	}
	if _, keep := filter.Normalize(tok("reef", "reef", "NOUN")); keep {
		t.Fatal("lemma under the configured minimum length should be dropped")
	}
	if lemma, keep := filter.Normalize(tok("salmon", "salmon", "NOUN")); !keep || lemma != "salmon" {
		t.Fatalf("expected salmon to survive, got (%q, %v)", lemma, keep)
	}
}

func TestApplyRewritesLemmas(t *testing.T) {
	filter := vocab.MatrixPreset()
	kept := filter.Apply([]corpus.Token{
		tok("Stocks", "Stock", "NOUN"),
		tok(".", ".", "PUNCT"),
	})
	if len(kept) != 1 {
		t.Fatalf("expected 1 surviving token, got %d", len(kept))
	}
	if kept[0].Lemma != "stock" {
		t.Fatalf("expected canonical lemma stock, got %q", kept[0].Lemma)
	}
}
