package reconcile

import (
	"log/slog"

	"stitch/internal/logging"
	"stitch/internal/tabular"
)

// JoinOptions configures a duration join.
type JoinOptions struct {
	// KeyColumn correlates rows between the two sources.
	KeyColumn string
	// DurationColumn must exist in the metadata source.
	DurationColumn string
	// TranscriptColumn is the column name written to the output.
	TranscriptColumn string
	// TranscriptAliases are the accepted transcript column names in the
	// transcriptions source; the first non-empty cell wins per row.
	TranscriptAliases []string
	// StrictKeys fails the join when the metadata key column contains
	// duplicates instead of letting the last occurrence win.
	StrictKeys bool
}

// JoinStats summarizes a duration join.
type JoinStats struct {
	DurationEntries int
	Total           int
	Matched         int
	Unmatched       int
}

// JoinDurations pairs every transcription row with the duration looked up
// from the metadata source by key, producing a three-column output
// {key, duration, transcript}. Rows whose key has no duration emit an
// empty duration cell and are counted as unmatched; no row is ever
// dropped, so the output row count equals the transcription row count.
func JoinDurations(metadata, transcriptions *tabular.Source, opts JoinOptions, logger *slog.Logger) (*tabular.Source, JoinStats, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "durations")

	stats := JoinStats{}

	if err := metadata.RequireColumn(opts.DurationColumn); err != nil {
		return nil, stats, err
	}
	durations, err := metadata.KeyMap(opts.KeyColumn, opts.StrictKeys)
	if err != nil {
		return nil, stats, err
	}
	stats.DurationEntries = len(durations)

	if err := transcriptions.RequireColumn(opts.KeyColumn); err != nil {
		return nil, stats, err
	}

	joined := &tabular.Source{
		Path:   transcriptions.Path,
		Header: []string{opts.KeyColumn, opts.DurationColumn, opts.TranscriptColumn},
		Rows:   make([]tabular.Row, 0, len(transcriptions.Rows)),
	}

	for _, row := range transcriptions.Rows {
		key := row[opts.KeyColumn]

		duration := ""
		if match, ok := durations[key]; ok {
			duration = match[opts.DurationColumn]
		}
		if duration != "" {
			stats.Matched++
		} else {
			stats.Unmatched++
			logger.Warn("no duration found", logging.String("key", key))
		}

		transcript := ""
		for _, alias := range opts.TranscriptAliases {
			if value := row[alias]; value != "" {
				transcript = value
				break
			}
		}

		joined.Rows = append(joined.Rows, tabular.Row{
			opts.KeyColumn:        key,
			opts.DurationColumn:   duration,
			opts.TranscriptColumn: transcript,
		})
		stats.Total++
	}

	return joined, stats, nil
}
