package config

// Command names used as keys of the "keys" section.
const (
	CommandMoveLeft   = "moveLeft"
	CommandMoveRight  = "moveRight"
	CommandMoveUp     = "moveUp"
	CommandMoveDown   = "moveDown"
	CommandPageUp     = "pageUp"
	CommandPageDown   = "pageDown"
	CommandScrollHome = "scrollHome"
	CommandQuit       = "quit"
)

func defaultKeys() map[string][]string {
	return map[string][]string{
		CommandMoveLeft:   {"h", "Left"},
		CommandMoveRight:  {"l", "Right"},
		CommandMoveUp:     {"k", "Up"},
		CommandMoveDown:   {"j", "Down"},
		CommandPageUp:     {"PgUp"},
		CommandPageDown:   {"PgDn"},
		CommandScrollHome: {"0", "Home"},
		CommandQuit:       {"q", "Ctrl-C"},
	}
}

// defaultConfig returns the built-in defaults. Lists are []any so they have
// the same shape as decoded config files.
func defaultConfig() map[string]any {
	keys := make(map[string]any)
	for cmd, names := range defaultKeys() {
		list := make([]any, len(names))
		for i, n := range names {
			list[i] = n
		}
		keys[cmd] = list
	}

	return map[string]any{
		"viewport": map[string]any{
			"columns": int64(80),
			"rows":    int64(24),
		},
		"input": map[string]any{
			"pollInterval": int64(17),
			"step":         int64(1),
		},
		"bars": map[string]any{
			"enabled":    []any{"editor_info", "status"},
			"foreground": "default",
			"background": "default",
			"reverse":    true,
		},
		"keys": keys,
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}
