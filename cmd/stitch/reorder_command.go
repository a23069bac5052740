package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stitch/internal/fileutil"
	"stitch/internal/reconcile"
	"stitch/internal/tabular"
)

func newReorderCommand(ctx *commandContext) *cobra.Command {
	var referencePath string
	var inputPath string
	var output string
	var column string
	var strict bool
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Reorder a CSV to match a reference file's row order",
		Long: "Permute the input file's rows into the key order of the reference\n" +
			"file. Reference keys missing from the input are warned about and\n" +
			"skipped; input rows absent from the reference are appended at the end\n" +
			"in ascending key order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			referencePath = fallback(referencePath, cfg.Paths.MetadataFile)
			inputPath = fallback(inputPath, cfg.Paths.DurationsFile)
			output = fallback(output, cfg.Paths.ReorderedFile)
			column = fallback(column, cfg.Columns.Key)

			if output == inputPath && !assumeYes {
				ok, err := confirmOverwrite(cmd.OutOrStdout(), inputPath)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := fileutil.RequireFile(referencePath); err != nil {
				return err
			}
			if err := fileutil.RequireFile(inputPath); err != nil {
				return err
			}

			reference, err := tabular.Load(referencePath)
			if err != nil {
				return err
			}
			target, err := tabular.Load(inputPath)
			if err != nil {
				return err
			}

			reordered, stats, err := reconcile.Reorder(reference, target, column, strict, logger)
			if err != nil {
				return err
			}
			if err := reordered.Write(output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reference rows: %d, input rows: %d\n", stats.ReferenceRows, stats.TargetRows)
			fmt.Fprintf(out, "Wrote %d rows to %s (matched %d, missing %d, extra appended %d)\n",
				len(reordered.Rows), output, stats.Matched, stats.Missing, stats.Extra)
			return nil
		},
	}

	cmd.Flags().StringVarP(&referencePath, "reference", "r", "", "Reference CSV whose order to match (default from config)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV file to reorder (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default from config)")
	cmd.Flags().StringVarP(&column, "column", "c", "", "Column name to match rows on (default from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on duplicate keys in the input file")
	cmd.Flags().BoolVar(&assumeYes, "yes", false, "Overwrite the input file without prompting")

	return cmd
}
