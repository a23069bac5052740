package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateColumns(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateColumns() error {
	if c.Columns.Key == c.Columns.Duration {
		return fmt.Errorf("columns.key and columns.duration must differ (both %q)", c.Columns.Key)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
