package reconcile

import (
	"log/slog"
	"sort"

	"stitch/internal/logging"
	"stitch/internal/tabular"
)

// ReorderStats summarizes a reorder run.
type ReorderStats struct {
	ReferenceRows int
	TargetRows    int
	Matched       int
	Missing       int
	Extra         int
}

// Reorder permutes the target source into the key order defined by the
// reference source. Reference keys absent from the target are counted as
// missing and contribute no output row; target rows whose key never
// appears in the reference are appended after the matched rows in
// ascending key order. The output keeps the target's schema.
func Reorder(reference, target *tabular.Source, keyColumn string, strict bool, logger *slog.Logger) (*tabular.Source, ReorderStats, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "reorder")

	stats := ReorderStats{}

	order, err := reference.Keys(keyColumn)
	if err != nil {
		return nil, stats, err
	}
	stats.ReferenceRows = len(order)

	rows, err := target.KeyMap(keyColumn, strict)
	if err != nil {
		return nil, stats, err
	}
	stats.TargetRows = len(rows)

	out := &tabular.Source{
		Path:   target.Path,
		Header: append([]string(nil), target.Header...),
		Rows:   make([]tabular.Row, 0, len(rows)),
	}

	referenced := make(map[string]struct{}, len(order))
	for _, key := range order {
		referenced[key] = struct{}{}
		row, ok := rows[key]
		if !ok {
			stats.Missing++
			logger.Warn("key in reference but not in input", logging.String("key", key))
			continue
		}
		out.Rows = append(out.Rows, row)
		stats.Matched++
	}

	extra := make([]string, 0)
	for key := range rows {
		if _, ok := referenced[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		out.Rows = append(out.Rows, rows[key])
	}
	stats.Extra = len(extra)
	if stats.Extra > 0 {
		logger.Warn("input rows not present in reference appended at end",
			logging.Int("count", stats.Extra))
	}

	return out, stats, nil
}
