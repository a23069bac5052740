// Package tabular models CSV row sources: an ordered header plus rows
// keyed by column name, loaded whole-file from disk and persisted back
// as new files. It also builds key-to-row maps used by the join and
// reorder transforms.
//
// A Source is immutable once loaded; transforms in internal/reconcile
// produce new sources rather than mutating in place.
package tabular
