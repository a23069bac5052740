package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is a single CSV record keyed by column name. Column order lives on
// the owning Source header, not on the row itself.
type Row map[string]string

// Source is an in-memory ordered collection of rows sharing one schema.
// The schema is established by the file's header line.
type Source struct {
	Path   string
	Header []string
	Rows   []Row
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Load reads an entire CSV file into a Source. The first record is the
// header; rows shorter than the header leave the trailing columns empty,
// rows longer than the header drop the surplus cells.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("read header from %s: file is empty", path)
		}
		return nil, fmt.Errorf("read header from %s: %w", path, err)
	}
	header = stripHeaderBOM(append([]string(nil), header...))

	src := &Source{Path: path, Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		src.Rows = append(src.Rows, row)
	}
	return src, nil
}

// Write persists the source to path as a new CSV file, header first, cell
// order following the source header.
func (s *Source) Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(s.Header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	record := make([]string, len(s.Header))
	for _, row := range s.Rows {
		for i, column := range s.Header {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}

// HasColumn reports whether the header contains the named column.
func (s *Source) HasColumn(column string) bool {
	for _, name := range s.Header {
		if name == column {
			return true
		}
	}
	return false
}

// RequireColumn returns a MissingColumnError when the named column is
// absent from the source schema.
func (s *Source) RequireColumn(column string) error {
	if s.HasColumn(column) {
		return nil
	}
	return &MissingColumnError{
		Path:      s.Path,
		Column:    column,
		Available: append([]string(nil), s.Header...),
	}
}

// Keys extracts the ordered key sequence from the named column, duplicates
// preserved.
func (s *Source) Keys(column string) ([]string, error) {
	if err := s.RequireColumn(column); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		keys = append(keys, row[column])
	}
	return keys, nil
}

func stripHeaderBOM(header []string) []string {
	if len(header) > 0 && strings.HasPrefix(header[0], utf8BOM) {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header
}
