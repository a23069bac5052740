package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// confirmOverwrite asks the user to confirm an in-place overwrite. On a
// non-interactive stdin it refuses instead of blocking on input; callers
// offer a --yes flag for that case.
func confirmOverwrite(out io.Writer, path string) (bool, error) {
	if !isInteractive(os.Stdin) {
		return false, fmt.Errorf("refusing to overwrite %s on non-interactive input (pass --yes to allow)", path)
	}
	fmt.Fprintf(out, "Warning: this will overwrite %s\nContinue? (y/n): ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func isInteractive(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// fallback returns value unless it is blank, then def.
func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
