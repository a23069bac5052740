package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stitch/internal/pipeline"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recorded pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if !cfg.RunLog.Enabled {
				return fmt.Errorf("run log is disabled in configuration")
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			runLog, err := pipeline.OpenRunLog(cfg.RunLog.Path)
			if err != nil {
				return err
			}
			defer runLog.Close()

			runs, err := runLog.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := ""
				if !run.FinishedAt.IsZero() {
					finished = run.FinishedAt.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{
					shortRunID(run.ID),
					run.Dataset,
					run.Status,
					run.StartedAt.Local().Format(time.DateTime),
					finished,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Dataset", "Status", "Started", "Finished"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")

	return cmd
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
