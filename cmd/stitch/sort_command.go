package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stitch/internal/fileutil"
	"stitch/internal/reconcile"
	"stitch/internal/tabular"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var column string
	var suffix string

	cmd := &cobra.Command{
		Use:   "sort <file1> <file2>",
		Short: "Write key-sorted copies of two CSV files for comparison",
		Long: "Stable-sort both files independently by the key column and write\n" +
			"each to \"<stem><suffix><ext>\". Reports whether the two sorted key\n" +
			"sequences are identical.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			column = fallback(column, cfg.Columns.Key)
			suffix = fallback(suffix, cfg.Sort.Suffix)

			for _, path := range args {
				if err := fileutil.RequireFile(path); err != nil {
					return err
				}
			}

			first, err := tabular.Load(args[0])
			if err != nil {
				return err
			}
			second, err := tabular.Load(args[1])
			if err != nil {
				return err
			}

			stats, err := reconcile.SortPair(first, second, column, suffix, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d rows to %s\n", stats.First.Rows, stats.First.OutputPath)
			fmt.Fprintf(out, "Wrote %d rows to %s\n", stats.Second.Rows, stats.Second.OutputPath)
			if stats.KeysMatch {
				fmt.Fprintf(out, "Both files have matching %s values in the same order\n", column)
			} else {
				fmt.Fprintf(out, "Files have different %s values\n", column)
				if stats.OnlyInFirst > 0 {
					fmt.Fprintf(out, "  In %s but not %s: %d items\n", args[0], args[1], stats.OnlyInFirst)
				}
				if stats.OnlyInSecond > 0 {
					fmt.Fprintf(out, "  In %s but not %s: %d items\n", args[1], args[0], stats.OnlyInSecond)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "Column name to sort by (default from config)")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "Suffix added to output filenames (default from config)")

	return cmd
}
