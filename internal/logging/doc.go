// Package logging wraps log/slog for the stitch CLI. It owns handler
// construction (console and json), level parsing, and the small set of
// attribute helpers the rest of the repository uses, so callers never
// import log/slog handler machinery directly.
package logging
