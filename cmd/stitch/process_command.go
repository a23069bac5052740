package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stitch/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var metadataPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "process <name>",
		Short: "Run the full reconciliation pipeline for a named dataset",
		Long: "Concatenate the CSV files in <name>_files, join durations from the\n" +
			"metadata file, and reorder the result to the metadata's row order.\n" +
			"Artifacts are written to <name>_generated_files; a failing step aborts\n" +
			"the rest but leaves completed artifacts in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			metadataPath = fallback(metadataPath, cfg.Paths.MetadataFile)

			var runLog *pipeline.RunLog
			if cfg.RunLog.Enabled {
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
				runLog, err = pipeline.OpenRunLog(cfg.RunLog.Path)
				if err != nil {
					return err
				}
				defer runLog.Close()
			}

			driver := pipeline.NewDriver(runLog, logger)
			result, err := driver.Run(cmd.Context(), pipeline.Options{
				Dataset:           args[0],
				MetadataPath:      metadataPath,
				KeyColumn:         cfg.Columns.Key,
				DurationColumn:    cfg.Columns.Duration,
				TranscriptColumn:  cfg.Columns.Transcript,
				TranscriptAliases: cfg.Columns.TranscriptAliases,
				StrictKeys:        strict,
				CombinedFile:      cfg.Paths.CombinedFile,
				DurationsFile:     cfg.Paths.DurationsFile,
			})

			out := cmd.OutOrStdout()
			for _, step := range result.Steps {
				fmt.Fprintf(out, "Step %s: %s (%d rows)\n", step.Name, step.Detail, step.Rows)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nProcessing complete for %s. Generated files:\n", result.Dataset)
			for _, artifact := range result.Artifacts {
				fmt.Fprintf(out, "  %s\n", artifact)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Metadata CSV file (default from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on duplicate keys instead of last-wins")

	return cmd
}
