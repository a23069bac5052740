package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stitch/internal/fileutil"
	"stitch/internal/reconcile"
	"stitch/internal/tabular"
)

func newDurationsCommand(ctx *commandContext) *cobra.Command {
	var metadataPath string
	var transcriptionsPath string
	var output string
	var strict bool

	cmd := &cobra.Command{
		Use:   "durations",
		Short: "Join duration metadata onto transcriptions by filename",
		Long: "Pair every transcription row with the duration looked up from the\n" +
			"metadata file by the key column. Rows without a duration get an empty\n" +
			"cell and are counted as unmatched; no row is dropped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			metadataPath = fallback(metadataPath, cfg.Paths.MetadataFile)
			transcriptionsPath = fallback(transcriptionsPath, cfg.Paths.CombinedFile)
			output = fallback(output, cfg.Paths.DurationsFile)

			if err := fileutil.RequireFile(metadataPath); err != nil {
				return err
			}
			if err := fileutil.RequireFile(transcriptionsPath); err != nil {
				return err
			}

			metadata, err := tabular.Load(metadataPath)
			if err != nil {
				return err
			}
			transcriptions, err := tabular.Load(transcriptionsPath)
			if err != nil {
				return err
			}

			joined, stats, err := reconcile.JoinDurations(metadata, transcriptions, reconcile.JoinOptions{
				KeyColumn:         cfg.Columns.Key,
				DurationColumn:    cfg.Columns.Duration,
				TranscriptColumn:  cfg.Columns.Transcript,
				TranscriptAliases: cfg.Columns.TranscriptAliases,
				StrictKeys:        strict,
			}, logger)
			if err != nil {
				return err
			}
			if err := joined.Write(output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d duration entries from %s\n", stats.DurationEntries, metadataPath)
			fmt.Fprintf(out, "Rows processed: %d (matched %d, unmatched %d)\n", stats.Total, stats.Matched, stats.Unmatched)
			fmt.Fprintf(out, "Output written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Metadata CSV with the duration column (default from config)")
	cmd.Flags().StringVarP(&transcriptionsPath, "transcriptions", "t", "", "Transcriptions CSV (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on duplicate keys in the metadata file")

	return cmd
}
