package dtm_test

import (
	"reflect"
	"testing"

	"themescope/internal/dtm"
	"themescope/internal/termfreq"
	"themescope/internal/testsupport"
	"themescope/internal/vocab"
)

func counts(t *testing.T, docs map[string]string) *termfreq.Counts {
	t.Helper()
	return termfreq.Aggregate(testsupport.Tokens(docs), vocab.MatrixPreset())
}

func TestBuildColumnsAreExactlySubsetLemmas(t *testing.T) {
	c := counts(t, map[string]string{
		"d1": "alpha bravo charlie",
		"d2": "bravo charlie delta",
	})

	train, err := dtm.Build(c, []string{"d1"})
	if err != nil {
		t.Fatalf("Build(train) returned error: %v", err)
	}
	test, err := dtm.Build(c, []string{"d2"})
	if err != nil {
		t.Fatalf("Build(test) returned error: %v", err)
	}

	if want := []string{"alpha", "bravo", "charlie"}; !reflect.DeepEqual(train.Terms, want) {
		t.Fatalf("train terms = %v, want %v", train.Terms, want)
	}
	if want := []string{"bravo", "charlie", "delta"}; !reflect.DeepEqual(test.Terms, want) {
		t.Fatalf("test terms = %v, want %v", test.Terms, want)
	}
}

func TestBuildStoresRawCounts(t *testing.T) {
	c := counts(t, map[string]string{
		"d1": "alpha alpha bravo",
		"d2": "bravo",
	})
	m, err := dtm.Build(c, []string{"d1", "d2"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	rows, cols := m.Dims()
	if rows != 2 || cols != 2 {
		t.Fatalf("dims = (%d, %d), want (2, 2)", rows, cols)
	}
	// Terms and docs are sorted, so alpha=row0, bravo=row1, d1=col0, d2=col1.
	if got := m.At(0, 0); got != 2 {
		t.Fatalf("count(alpha, d1) = %g, want 2", got)
	}
	if got := m.At(1, 1); got != 1 {
		t.Fatalf("count(bravo, d2) = %g, want 1", got)
	}
	if got := m.At(0, 1); got != 0 {
		t.Fatalf("count(alpha, d2) = %g, want 0", got)
	}
}

func TestBuildOmitsDocumentsWithoutSurvivingTerms(t *testing.T) {
	c := counts(t, map[string]string{"d1": "alpha"})
	m, err := dtm.Build(c, []string{"d1", "ghost"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !reflect.DeepEqual(m.Docs, []string{"d1"}) {
		t.Fatalf("docs = %v, want [d1]", m.Docs)
	}

	if _, err := dtm.Build(c, []string{"ghost"}); err == nil {
		t.Fatal("expected error for subset with no surviving documents")
	}
}

func TestAlignToTrainingVocabulary(t *testing.T) {
	c := counts(t, map[string]string{
		"t1": "alpha bravo charlie",
		"e1": "bravo charlie delta delta",
	})
	train, err := dtm.Build(c, []string{"t1"})
	if err != nil {
		t.Fatalf("Build(train) returned error: %v", err)
	}
	test, err := dtm.Build(c, []string{"e1"})
	if err != nil {
		t.Fatalf("Build(test) returned error: %v", err)
	}

	aligned, mismatch := test.AlignTo(train.Terms)

	if !reflect.DeepEqual(aligned.Terms, train.Terms) {
		t.Fatalf("aligned terms = %v, want training vocabulary %v", aligned.Terms, train.Terms)
	}
	if mismatch.Empty() {
		t.Fatal("expected a vocabulary mismatch diagnostic")
	}
	if !reflect.DeepEqual(mismatch.Dropped, []string{"delta"}) {
		t.Fatalf("dropped = %v, want [delta]", mismatch.Dropped)
	}
	if !reflect.DeepEqual(mismatch.ZeroFilled, []string{"alpha"}) {
		t.Fatalf("zero-filled = %v, want [alpha]", mismatch.ZeroFilled)
	}

	// alpha=row0 zero-filled; bravo=row1 and charlie=row2 keep their counts.
	if got := aligned.At(0, 0); got != 0 {
		t.Fatalf("aligned count(alpha, e1) = %g, want 0", got)
	}
	if got := aligned.At(1, 0); got != 1 {
		t.Fatalf("aligned count(bravo, e1) = %g, want 1", got)
	}
}

func TestAlignToIdenticalVocabularyReportsNoMismatch(t *testing.T) {
	c := counts(t, map[string]string{"d1": "alpha bravo"})
	m, err := dtm.Build(c, []string{"d1"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	aligned, mismatch := m.AlignTo(m.Terms)
	if !mismatch.Empty() {
		t.Fatalf("unexpected mismatch: %+v", mismatch)
	}
	if got := aligned.At(0, 0); got != m.At(0, 0) {
		t.Fatal("alignment to the same vocabulary must preserve counts")
	}
}
