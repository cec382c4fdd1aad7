package main

import (
	"bytes"
	"strings"
	"testing"

	"themescope/internal/sweep"
)

func TestCurveRowsFormatting(t *testing.T) {
	rows := curveRows(sweep.Curve{{K: 2, Perplexity: 512.345}, {K: 10, Perplexity: 480}})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2" || rows[0][1] != "512.35" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1][0] != "10" || rows[1][1] != "480.00" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
}

func TestRenderTableIncludesHeadersAndRows(t *testing.T) {
	out := renderTable(
		[]string{"K", "PERPLEXITY"},
		[][]string{{"2", "500.00"}, {"3", "420.00"}},
		[]columnAlignment{alignRight, alignRight},
	)
	for _, want := range []string{"K", "PERPLEXITY", "500.00", "420.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{"tfidf": false, "sweep": false, "curve": false, "config": false}
	for _, cmd := range root.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing %s subcommand", name)
		}
	}
}

func TestConfigPathCommandPrintsPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"config", "path"})

	if err := root.Execute(); err != nil {
		t.Fatalf("config path returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "config.toml") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
