package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"themescope/internal/artifacts"
	"themescope/internal/pipeline"
	"themescope/internal/sweep"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "sweep <tokens.tsv>",
		Short: "Fit topic models across candidate K values and select the best",
		Long: `Sweep partitions the corpus into train and test sets, builds a
document-term matrix per split, fits a topic model for every candidate K on
the training matrix, and measures held-out perplexity on the test matrix.
The K minimizing perplexity is reported; the curve is persisted so an
identical invocation loads the stored result instead of recomputing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var store *artifacts.Store
			if !noCache {
				store, err = artifacts.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			p := pipeline.New(cfg, store, nil, logger)
			report, err := p.RunSweep(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}
			renderSweepReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Recompute even when a stored curve matches")
	return cmd
}

func renderSweepReport(cmd *cobra.Command, report *pipeline.SweepReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"K", "PERPLEXITY"},
		curveRows(report.Curve),
		[]columnAlignment{alignRight, alignRight},
	))
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "k=%d failed: %v\n", failure.K, failure.Err)
	}
	if report.FromCache {
		fmt.Fprintf(out, "Loaded stored curve (run %s)\n", report.RunUUID)
	} else {
		fmt.Fprintf(out, "Train documents: %d  Test documents: %d  Vocabulary: %d\n",
			report.TrainDocs, report.TestDocs, report.Vocabulary)
	}
	fmt.Fprintf(out, "Selected K: %d\n", report.SelectedK)
}

func curveRows(curve sweep.Curve) [][]string {
	rows := make([][]string, 0, len(curve))
	for _, point := range curve {
		rows = append(rows, []string{
			strconv.Itoa(point.K),
			strconv.FormatFloat(point.Perplexity, 'f', 2, 64),
		})
	}
	return rows
}
