// Package reconcile implements the CSV reconciliation transforms:
// concatenating same-schema chunk files, joining duration metadata onto
// transcriptions by filename, reordering rows to a reference file's key
// sequence, sorting file pairs for comparison, and diffing key sets.
//
// Every transform is a single pass over fully-loaded row sources. Key
// mismatches between sources never fail a transform; they are logged,
// counted, and reported in the returned stats.
package reconcile
