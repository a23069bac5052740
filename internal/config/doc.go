// Package config loads, normalizes, and validates the stitch
// configuration. Configuration is optional: every value has a built-in
// default matching the CLI's documented behavior, and a TOML file at
// ~/.config/stitch/config.toml (or ./stitch.toml) can override them.
package config
