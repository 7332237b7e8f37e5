package app

import (
	"fmt"

	"github.com/dshills/stedit/internal/config"
	"github.com/dshills/stedit/internal/renderer/backend"
)

// Command is an editor action a key can be bound to.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandMoveUp
	CommandMoveDown
	CommandPageUp
	CommandPageDown
	CommandScrollHome
	CommandQuit
)

var commandNames = map[string]Command{
	config.CommandMoveLeft:   CommandMoveLeft,
	config.CommandMoveRight:  CommandMoveRight,
	config.CommandMoveUp:     CommandMoveUp,
	config.CommandMoveDown:   CommandMoveDown,
	config.CommandPageUp:     CommandPageUp,
	config.CommandPageDown:   CommandPageDown,
	config.CommandScrollHome: CommandScrollHome,
	config.CommandQuit:       CommandQuit,
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "none"
}

// Keymap resolves key names, as produced by backend.Event.KeyName, to
// commands.
type Keymap struct {
	bindings map[string]Command
}

// NewKeymap builds a keymap from configured bindings. Commands are applied in
// sorted order, so when two commands claim the same key the later name wins.
// Unknown command names are reported but do not prevent the rest from
// loading.
func NewKeymap(keys config.KeysConfig) (*Keymap, error) {
	km := &Keymap{bindings: make(map[string]Command)}

	var unknown []string
	for _, name := range keys.Commands() {
		cmd, ok := commandNames[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		for _, key := range keys[name] {
			km.bindings[key] = cmd
		}
	}

	if len(unknown) > 0 {
		return km, fmt.Errorf("unknown commands in keymap: %v", unknown)
	}
	return km, nil
}

// Lookup returns the command bound to ev, or CommandNone.
func (km *Keymap) Lookup(ev backend.Event) Command {
	name := ev.KeyName()
	if name == "" {
		return CommandNone
	}
	return km.bindings[name]
}

// Len returns the number of bound keys.
func (km *Keymap) Len() int {
	return len(km.bindings)
}
