package reconcile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"stitch/internal/logging"
)

// FileRows records the contribution of one input file to a concatenation.
type FileRows struct {
	Path string
	Rows int
}

// ConcatStats summarizes a concatenation run.
type ConcatStats struct {
	FilesMerged  int
	FilesSkipped int
	Rows         int
	Header       []string
	PerFile      []FileRows
}

// Concat appends the data rows of the given CSV files into output, in the
// given file order, writing a single header taken from the first
// non-empty file. Files that cannot be opened or contain no header are
// skipped with a warning; later files' headers are not compared against
// the first. The total emitted row count equals the sum of the included
// files' row counts.
func Concat(files []string, output string, logger *slog.Logger) (ConcatStats, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "concat")

	stats := ConcatStats{}
	if len(files) == 0 {
		return stats, errors.New("no input files to concatenate")
	}

	out, err := os.Create(output)
	if err != nil {
		return stats, fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	headerWritten := false

	for _, path := range files {
		rows, header, wroteHeader, err := appendFile(writer, path, headerWritten)
		if wroteHeader {
			stats.Header = header
			headerWritten = true
		}
		stats.Rows += rows
		if err != nil {
			logger.Warn("skipping file", logging.String("file", path), logging.Error(err))
			stats.FilesSkipped++
			continue
		}
		stats.FilesMerged++
		stats.PerFile = append(stats.PerFile, FileRows{Path: path, Rows: rows})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return stats, fmt.Errorf("flush %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("close %s: %w", output, err)
	}
	if !headerWritten {
		return stats, errors.New("all input files were empty or unreadable")
	}
	return stats, nil
}

func appendFile(writer *csv.Writer, path string, headerWritten bool) (int, []string, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return 0, nil, false, errors.New("file is empty")
		}
		return 0, nil, false, fmt.Errorf("read header: %w", err)
	}
	wroteHeader := false
	if !headerWritten {
		if err := writer.Write(header); err != nil {
			return 0, nil, false, fmt.Errorf("write header: %w", err)
		}
		wroteHeader = true
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, header, wroteHeader, fmt.Errorf("read row: %w", err)
		}
		if err := writer.Write(record); err != nil {
			return rows, header, wroteHeader, fmt.Errorf("write row: %w", err)
		}
		rows++
	}
	return rows, header, wroteHeader, nil
}
