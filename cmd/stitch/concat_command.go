package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"stitch/internal/fileutil"
	"stitch/internal/reconcile"
)

func newConcatCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var output string
	var noSort bool
	var names []string

	cmd := &cobra.Command{
		Use:   "concat",
		Short: "Combine a folder of same-schema CSV files into one",
		Long: "Combine every CSV file in a folder into a single CSV with one header\n" +
			"taken from the first non-empty file. Files are processed in name order\n" +
			"unless --no-sort is given, or in the explicit order of --names patterns.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			inputDir = fallback(inputDir, cfg.Paths.InputDir)
			output = fallback(output, cfg.Paths.CombinedFile)

			var files []string
			if len(names) > 0 {
				for _, pattern := range names {
					path, err := fileutil.FindByPattern(inputDir, pattern)
					if err != nil {
						return err
					}
					if path == "" {
						fmt.Fprintf(cmd.OutOrStdout(), "No file in %s matches %q\n", inputDir, pattern)
						continue
					}
					files = append(files, path)
				}
			} else {
				files, err = fileutil.ListCSVFiles(inputDir, !noSort)
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no CSV files found in %s", inputDir)
			}

			stats, err := reconcile.Concat(files, output, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, contribution := range stats.PerFile {
				fmt.Fprintf(out, "%s: %d rows\n", filepath.Base(contribution.Path), contribution.Rows)
			}
			if stats.FilesSkipped > 0 {
				fmt.Fprintf(out, "Skipped %d unreadable or empty files\n", stats.FilesSkipped)
			}
			fmt.Fprintf(out, "Merged %d files into %s (%d rows)\n", stats.FilesMerged, output, stats.Rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-folder", "i", "", "Folder containing CSV files (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default from config)")
	cmd.Flags().BoolVar(&noSort, "no-sort", false, "Keep directory order instead of sorting files by name")
	cmd.Flags().StringSliceVarP(&names, "names", "n", nil, "Merge only files matching these name patterns, in order")

	return cmd
}
