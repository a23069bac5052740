package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stitch/internal/fileutil"
	"stitch/internal/reconcile"
	"stitch/internal/tabular"
)

func newDiffCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Compare the key sets of two CSV files",
		Long: "Report key counts, intersection size, and the keys unique to each\n" +
			"file, keyed by each file's first column. When the key sets match\n" +
			"exactly, duplicate keys within each file are listed instead. No file\n" +
			"is written.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			report := reconcile.DiffKeys(first, second)
			printDiffReport(cmd, report)
			return nil
		},
	}

	return cmd
}

func printDiffReport(cmd *cobra.Command, report reconcile.DiffReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Comparing keys between %s and %s\n", report.FirstPath, report.SecondPath)
	fmt.Fprintln(out, renderTable(
		[]string{"", "Total", "Unique"},
		[][]string{
			{report.FirstPath, strconv.Itoa(report.FirstTotal), strconv.Itoa(report.FirstUnique)},
			{report.SecondPath, strconv.Itoa(report.SecondTotal), strconv.Itoa(report.SecondUnique)},
		},
		2, 3,
	))
	fmt.Fprintf(out, "Common keys: %d\n", report.Common)

	if len(report.OnlyInFirst) > 0 {
		fmt.Fprintf(out, "\nKeys only in %s: %d\n", report.FirstPath, len(report.OnlyInFirst))
		for _, key := range report.OnlyInFirst {
			fmt.Fprintf(out, "  - %s\n", key)
		}
	}
	if len(report.OnlyInSecond) > 0 {
		fmt.Fprintf(out, "\nKeys only in %s: %d\n", report.SecondPath, len(report.OnlyInSecond))
		for _, key := range report.OnlyInSecond {
			fmt.Fprintf(out, "  - %s\n", key)
		}
	}

	if !report.SetsEqual {
		return
	}
	fmt.Fprintln(out, "\nBoth files have the exact same keys")
	printDuplicates(cmd, report.FirstPath, report.FirstDuplicates)
	printDuplicates(cmd, report.SecondPath, report.SecondDuplicates)
}

func printDuplicates(cmd *cobra.Command, path string, dups []reconcile.KeyCount) {
	if len(dups) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nDuplicates in %s:\n", path)
	for _, dup := range dups {
		fmt.Fprintf(out, "  - %s appears %d times\n", dup.Key, dup.Count)
	}
}
