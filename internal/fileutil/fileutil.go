// Package fileutil provides filesystem helpers shared by the CLI and the
// pipeline driver: existence checks, CSV discovery, and derived output
// naming.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MissingFileError reports a path that does not exist or has the wrong
// type for the requested use.
type MissingFileError struct {
	Path string
	Kind string // "file" or "directory"
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// RequireFile fails unless path exists and is a regular file.
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &MissingFileError{Path: path, Kind: "file"}
	}
	return nil
}

// RequireDir fails unless path exists and is a directory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return &MissingFileError{Path: path, Kind: "directory"}
	}
	return nil
}

// ListCSVFiles returns the .csv files directly inside dir. When sorted is
// true the result is ordered by name; otherwise directory order is kept.
func ListCSVFiles(dir string, sorted bool) ([]string, error) {
	if err := RequireDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if sorted {
		sort.Strings(files)
	}
	return files, nil
}

// FindByPattern returns the first CSV file in dir whose base name contains
// pattern, case-insensitively. The empty string signals no match.
func FindByPattern(dir, pattern string) (string, error) {
	files, err := ListCSVFiles(dir, true)
	if err != nil {
		return "", err
	}
	needle := strings.ToLower(pattern)
	for _, path := range files {
		if strings.Contains(strings.ToLower(filepath.Base(path)), needle) {
			return path, nil
		}
	}
	return "", nil
}

// WithSuffix derives "<stem><suffix><ext>" from path, preserving the
// directory component.
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + suffix + ext
}
