package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themescope/internal/artifacts"
)

func newCurveCommand(ctx *commandContext) *cobra.Command {
	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "Inspect stored perplexity curves",
	}
	curveCmd.AddCommand(newCurveListCommand(ctx))
	curveCmd.AddCommand(newCurveShowCommand(ctx))
	return curveCmd
}

func newCurveListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sweep runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := artifacts.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored runs.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.UUID,
					run.Fingerprint[:12],
					fmt.Sprintf("%d", run.SelectedK),
					run.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"RUN", "FINGERPRINT", "SELECTED K", "CREATED"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")
	return cmd
}

func newCurveShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show [fingerprint]",
		Short: "Show the stored curve for a fingerprint (latest when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := artifacts.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var run *artifacts.Run
			if len(args) == 1 {
				run, err = store.FindRun(cmd.Context(), args[0])
			} else {
				run, err = store.LatestRun(cmd.Context())
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					RunUUID   string      `json:"run_uuid"`
					SelectedK int         `json:"selected_k"`
					Curve     interface{} `json:"curve"`
				}{run.UUID, run.SelectedK, run.Curve})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"K", "PERPLEXITY"},
				curveRows(run.Curve),
				[]columnAlignment{alignRight, alignRight},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s  Selected K: %d\n", run.UUID, run.SelectedK)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the curve as JSON")
	return cmd
}
