package config

import (
	"slices"
	"time"
)

// Section accessors return snapshots. Mutating the returned value does not
// change the configuration.

// ViewportConfig is the display size used when no terminal reports one.
type ViewportConfig struct {
	Columns int
	Rows    int
}

// InputConfig controls the event loop.
type InputConfig struct {
	// PollInterval is how long the loop waits for input before rendering
	// anyway.
	PollInterval time.Duration
	// Step is the magnitude of a single movement command.
	Step int
}

// BarsConfig selects and styles the status bars.
type BarsConfig struct {
	// Enabled lists bar names top to bottom.
	Enabled    []string
	Foreground string
	Background string
	Reverse    bool
}

// KeysConfig maps command names to key names.
type KeysConfig map[string][]string

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level string
	// File is where logs go; empty means the default sink.
	File string
}

// Viewport returns the headless display size. Values below 1 fall back to
// the defaults.
func (c *Config) Viewport() ViewportConfig {
	v := ViewportConfig{
		Columns: c.getIntOr("viewport.columns", 80),
		Rows:    c.getIntOr("viewport.rows", 24),
	}
	if v.Columns < 1 {
		v.Columns = 80
	}
	if v.Rows < 1 {
		v.Rows = 24
	}
	return v
}

// Input returns event loop settings. pollInterval is in milliseconds.
func (c *Config) Input() InputConfig {
	ms := c.getIntOr("input.pollInterval", 17)
	if ms < 1 {
		ms = 17
	}
	step := c.getIntOr("input.step", 1)
	if step < 1 {
		step = 1
	}
	return InputConfig{
		PollInterval: time.Duration(ms) * time.Millisecond,
		Step:         step,
	}
}

// Bars returns status bar settings.
func (c *Config) Bars() BarsConfig {
	return BarsConfig{
		Enabled:    c.getStringSliceOr("bars.enabled", []string{"editor_info", "status"}),
		Foreground: c.getStringOr("bars.foreground", "default"),
		Background: c.getStringOr("bars.background", "default"),
		Reverse:    c.getBoolOr("bars.reverse", true),
	}
}

// Keys returns the keymap. Commands missing from the config keep their
// default keys; a command configured with an empty list is unbound.
func (c *Config) Keys() KeysConfig {
	keys := KeysConfig(defaultKeys())

	v, ok := c.Get("keys")
	if !ok {
		return keys
	}
	m, ok := v.(map[string]any)
	if !ok {
		return keys
	}
	for cmd := range m {
		if names, err := c.GetStringSlice("keys." + cmd); err == nil {
			keys[cmd] = names
		}
	}
	return keys
}

// Commands returns the command names in k, sorted.
func (k KeysConfig) Commands() []string {
	cmds := make([]string, 0, len(k))
	for cmd := range k {
		cmds = append(cmds, cmd)
	}
	slices.Sort(cmds)
	return cmds
}

// Logging returns logger settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}
