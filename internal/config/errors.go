package config

import (
	"errors"
	"fmt"
)

// ErrSettingNotFound indicates the setting path doesn't exist.
var ErrSettingNotFound = errors.New("setting not found")

// TypeError reports a setting whose value has the wrong type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}
