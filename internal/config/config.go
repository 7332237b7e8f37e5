// Package config provides layered configuration for stedit.
//
// Settings are resolved from three layers, lowest precedence first:
//
//  1. Built-in defaults
//  2. The config file (TOML or YAML, chosen by extension)
//  3. Environment variables with the STEDIT_ prefix
//
// Settings are addressed by dot-separated paths such as "viewport.columns".
// Section accessors (Viewport, Input, Bars, Keys, Logging) return snapshot
// structs with defaults filled in for missing or mistyped values.
package config

import (
	"strings"
	"sync"

	"github.com/dshills/stedit/internal/config/loader"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "STEDIT_"

// Config holds the merged configuration. It is safe for concurrent use.
type Config struct {
	mu   sync.RWMutex
	data map[string]any

	path      string
	fs        loader.FileSystem
	envPrefix string
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the config file. An empty path means no file layer.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system the config file is read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment prefix. An empty prefix disables the
// environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config holding only the built-in defaults. Call Load to read
// the file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		data:      defaultConfig(),
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the config file path, or "" if there is none.
func (c *Config) Path() string {
	return c.path
}

// Load rebuilds the configuration from all layers. A missing config file is
// not an error. On error the previous configuration is kept.
func (c *Config) Load() error {
	merged := defaultConfig()

	if c.path != "" {
		l, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return err
		}
		fileData, err := l.Load()
		if err != nil {
			return err
		}
		merged = loader.DeepMerge(merged, fileData)
	}

	if c.envPrefix != "" {
		env := loader.NewEnvLoader(c.envPrefix)
		env.AddMapping(c.envPrefix+"LOG_LEVEL", "logging.level")
		env.AddMapping(c.envPrefix+"LOG_FILE", "logging.file")
		envData, err := env.Load()
		if err != nil {
			return err
		}
		merged = loader.DeepMerge(merged, envData)
	}

	c.mu.Lock()
	c.data = merged
	c.mu.Unlock()
	return nil
}

// Get returns the value at path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return getPath(c.data, path)
}

// GetString returns the string at path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns the integer at path. Whole floats are accepted.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val == float64(int(val)) {
			return int(val), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

// GetBool returns the boolean at path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringSlice returns the list of strings at path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: "[]" + typeName(item)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

func (c *Config) getStringOr(path, def string) string {
	if s, err := c.GetString(path); err == nil {
		return s
	}
	return def
}

func (c *Config) getIntOr(path string, def int) int {
	if n, err := c.GetInt(path); err == nil {
		return n
	}
	return def
}

func (c *Config) getBoolOr(path string, def bool) bool {
	if b, err := c.GetBool(path); err == nil {
		return b
	}
	return def
}

func (c *Config) getStringSliceOr(path string, def []string) []string {
	if s, err := c.GetStringSlice(path); err == nil {
		return s
	}
	return def
}

func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// splitPath splits a dotted path, dropping empty segments.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' })
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string, []any:
		return "list"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
