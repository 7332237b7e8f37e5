// Package backend provides the display abstraction the application draws to
// and reads input from.
package backend

import (
	"strings"

	"github.com/dshills/stedit/internal/renderer/core"
)

// EventType identifies the type of a backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt is a synthetic event used to wake a blocked PollEvent.
	EventInterrupt
)

// Event is an input or resize event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key identifies a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Printable character or Ctrl+letter; see Rune and Mod
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
}

// ModMask is a set of modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << (iota - 1)
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// KeyName returns the name a key event is bound by in the keymap: the rune
// itself for printable keys ("h", "0"), "Ctrl-" plus a letter for control
// keys ("Ctrl-C"), and a fixed name for special keys ("Up", "PgDn").
// Non-key events have no name.
func (e Event) KeyName() string {
	if e.Type != EventKey {
		return ""
	}
	if e.Key == KeyRune {
		if e.Mod.Has(ModCtrl) {
			return "Ctrl-" + strings.ToUpper(string(e.Rune))
		}
		return string(e.Rune)
	}
	return keyNames[e.Key]
}

// Backend is a cell-addressed display with an input event source.
type Backend interface {
	// Init takes over the display. Must be called before any other method.
	Init() error

	// Shutdown releases the display and restores its previous state.
	Shutdown()

	// Size returns the display size in cells.
	Size() (width, height int)

	// SetCell sets one cell. Positions outside the display are ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns one cell, or an empty cell outside the display.
	GetCell(x, y int) core.Cell

	// Fill sets every cell of rect.
	Fill(rect core.Rect, cell core.Cell)

	// Clear blanks the display.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor places and shows the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent blocks until the next event. After Shutdown it returns an
	// event of type EventNone.
	PollEvent() Event

	// PostEvent queues a synthetic event.
	PostEvent(event Event)
}

// DrawString writes s starting at x, y and returns the number of columns
// used. Wide runes take two columns; drawing stops before a rune that would
// cross maxWidth.
func DrawString(b Backend, x, y int, s string, style core.Style, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		b.SetCell(x+used, y, core.Cell{Rune: r, Width: w, Style: style})
		used += w
	}
	return used
}
