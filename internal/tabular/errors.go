package tabular

import (
	"fmt"
	"strings"
)

// MissingColumnError reports a required column absent from a file's
// schema. It always names the available columns as a remediation hint.
type MissingColumnError struct {
	Path      string
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s (available: %s)",
		e.Column, e.Path, strings.Join(e.Available, ", "))
}

// DuplicateKeyError is returned by strict key map construction when a key
// value repeats within one source.
type DuplicateKeyError struct {
	Path   string
	Column string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in column %q of %s", e.Key, e.Column, e.Path)
}
