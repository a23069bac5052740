// Package pipeline sequences the reconciliation steps for one named
// dataset: concatenate the dataset's chunk files, join durations from
// the metadata file, and reorder the result to the metadata's row order.
//
// Steps run in-process as direct function calls with a result per step.
// A failing step aborts the remainder immediately; artifacts already
// written by completed steps stay on disk. Run outcomes are recorded in
// a SQLite-backed run log, and a file lock per dataset prevents two
// concurrent runs from interleaving artifacts.
package pipeline
