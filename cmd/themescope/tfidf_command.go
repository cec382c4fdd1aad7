package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"themescope/internal/pipeline"
	"themescope/internal/termfreq"
)

func newTfIdfCommand(ctx *commandContext) *cobra.Command {
	var topN int
	var csvPath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tfidf <tokens.tsv>",
		Short: "Compute the TF-IDF table for a lemmatized token file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, nil, nil, logger)
			records, err := p.ComputeTfIdf(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no terms survived the vocabulary filter in %s", args[0])
			}

			if csvPath != "" {
				if err := writeTfIdfCSV(csvPath, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(records), csvPath)
				return nil
			}
			if jsonOut {
				return writeJSON(cmd, records)
			}

			renderTopTerms(cmd, records, topN)
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 10, "Terms shown per document")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the full table as CSV to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full table as JSON")
	return cmd
}

func renderTopTerms(cmd *cobra.Command, records []termfreq.Record, topN int) {
	byDoc := termfreq.TopByDoc(records, topN)

	docs := make([]string, 0, len(byDoc))
	for id := range byDoc {
		docs = append(docs, id)
	}
	sort.Strings(docs)

	rows := make([][]string, 0, len(records))
	for _, id := range docs {
		for _, rec := range byDoc[id] {
			rows = append(rows, []string{
				rec.DocID,
				rec.Lemma,
				formatScore(rec.TF),
				formatScore(rec.IDF),
				formatScore(rec.TFIDF),
			})
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"DOCUMENT", "LEMMA", "TF", "IDF", "TF-IDF"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}

func writeTfIdfCSV(path string, records []termfreq.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"document_id", "lemma", "tf", "idf", "tfidf"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.DocID,
			rec.Lemma,
			strconv.FormatFloat(rec.TF, 'g', -1, 64),
			strconv.FormatFloat(rec.IDF, 'g', -1, 64),
			strconv.FormatFloat(rec.TFIDF, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
