package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeColumns()
	c.normalizePaths()
	c.normalizeSort()
	c.normalizeLogging()
	return c.normalizeRunLog()
}

func (c *Config) normalizeColumns() {
	c.Columns.Key = strings.TrimSpace(c.Columns.Key)
	if c.Columns.Key == "" {
		c.Columns.Key = defaultKeyColumn
	}
	c.Columns.Duration = strings.TrimSpace(c.Columns.Duration)
	if c.Columns.Duration == "" {
		c.Columns.Duration = defaultDurationColumn
	}
	c.Columns.Transcript = strings.TrimSpace(c.Columns.Transcript)
	if c.Columns.Transcript == "" {
		c.Columns.Transcript = defaultTranscriptColumn
	}
	aliases := make([]string, 0, len(c.Columns.TranscriptAliases))
	for _, alias := range c.Columns.TranscriptAliases {
		if alias = strings.TrimSpace(alias); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	if len(aliases) == 0 {
		aliases = []string{"Transcription", "transcript"}
	}
	c.Columns.TranscriptAliases = aliases
}

func (c *Config) normalizePaths() {
	fallback := func(value *string, def string) {
		*value = strings.TrimSpace(*value)
		if *value == "" {
			*value = def
		}
	}
	fallback(&c.Paths.InputDir, defaultInputDir)
	fallback(&c.Paths.MetadataFile, defaultMetadataFile)
	fallback(&c.Paths.CombinedFile, defaultCombinedFile)
	fallback(&c.Paths.DurationsFile, defaultDurationsFile)
	fallback(&c.Paths.ReorderedFile, defaultReorderedFile)
}

func (c *Config) normalizeSort() {
	if strings.TrimSpace(c.Sort.Suffix) == "" {
		c.Sort.Suffix = defaultSortSuffix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeRunLog() error {
	path := strings.TrimSpace(c.RunLog.Path)
	if path == "" {
		path = defaultRunLogPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("run_log.path: %w", err)
	}
	c.RunLog.Path = expanded
	return nil
}
