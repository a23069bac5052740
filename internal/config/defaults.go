package config

const (
	defaultKeyColumn        = "Filename"
	defaultDurationColumn   = "duration_sec"
	defaultTranscriptColumn = "transcript"

	defaultInputDir      = "files"
	defaultMetadataFile  = "metadata_copy.csv"
	defaultCombinedFile  = "combined_transcriptions.csv"
	defaultDurationsFile = "combined_transcriptions_duration.csv"
	defaultReorderedFile = "combined_transcriptions_duration_reordered.csv"

	defaultSortSuffix = "_ordered"

	defaultRunLogPath = "~/.local/share/stitch/runs.db"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Columns: Columns{
			Key:               defaultKeyColumn,
			Duration:          defaultDurationColumn,
			Transcript:        defaultTranscriptColumn,
			TranscriptAliases: []string{"Transcription", "transcript"},
		},
		Paths: Paths{
			InputDir:      defaultInputDir,
			MetadataFile:  defaultMetadataFile,
			CombinedFile:  defaultCombinedFile,
			DurationsFile: defaultDurationsFile,
			ReorderedFile: defaultReorderedFile,
		},
		Sort: Sort{
			Suffix: defaultSortSuffix,
		},
		RunLog: RunLog{
			Enabled: true,
			Path:    defaultRunLogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
