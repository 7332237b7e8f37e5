// Package statusline provides the status bars drawn below the viewport.
//
// The set of bars is closed: each Bar carries a Kind, and Render switches on
// it. Bars take their values from a Snapshot, so they never reach into the
// cursor field or the frame counter themselves.
package statusline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/stedit/internal/renderer/backend"
	"github.com/dshills/stedit/internal/renderer/core"
)

// Kind identifies a bar variant.
type Kind int

const (
	// KindEditorInfo shows the viewport size and frame statistics.
	KindEditorInfo Kind = iota
	// KindStatus shows the file path, viewport size and cursor position.
	KindStatus
	// KindPerformance shows frame statistics only.
	KindPerformance
)

var kindNames = []string{
	KindEditorInfo:  "editor_info",
	KindStatus:      "status",
	KindPerformance: "performance",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a configuration name to a kind. Matching ignores case, and
// '-' may stand in for '_'.
func ParseKind(name string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for k, n := range kindNames {
		if n == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown bar %q", name)
}

// Bar is one status bar. Smaller priorities render nearer the top of the bar
// area.
type Bar struct {
	Kind     Kind
	Priority int
}

// Snapshot holds the values bars display for one frame.
type Snapshot struct {
	Path          string
	Columns, Rows uint16
	CursorColumn  uint16
	CursorRow     uint16
	Uptime        uint64 // whole seconds
	Frames        uint64
	FPS           uint64
}

// Render returns the text of bar for snap.
func Render(bar Bar, snap Snapshot) string {
	switch bar.Kind {
	case KindEditorInfo:
		return fmt.Sprintf("[Editor Info] Cols: %d Rows: %d Uptime (secs): %d Frames: %d FPS: %d",
			snap.Columns, snap.Rows, snap.Uptime, snap.Frames, snap.FPS)
	case KindStatus:
		path := snap.Path
		if path == "" {
			path = "[No Name]"
		}
		return fmt.Sprintf("[Status] File path: %s [Dimensions]: %d, %d [Cursor]: %d, %d",
			path, snap.Columns, snap.Rows, snap.CursorColumn, snap.CursorRow)
	case KindPerformance:
		return fmt.Sprintf("[Performance] Uptime (secs): %d Frames: %d FPS: %d",
			snap.Uptime, snap.Frames, snap.FPS)
	default:
		return ""
	}
}

// Set is an ordered group of bars sharing one style.
type Set struct {
	bars  []Bar
	style core.Style
}

// NewSet creates a set from bars, ordered by priority. Bars with equal
// priority keep their given order.
func NewSet(style core.Style, bars ...Bar) *Set {
	sorted := slices.Clone(bars)
	slices.SortStableFunc(sorted, func(a, b Bar) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return &Set{bars: sorted, style: style}
}

// ParseSet builds a set from configuration names. Each bar gets its position
// in names as its priority.
func ParseSet(style core.Style, names []string) (*Set, error) {
	bars := make([]Bar, 0, len(names))
	for i, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		bars = append(bars, Bar{Kind: k, Priority: i})
	}
	return NewSet(style, bars...), nil
}

// Bars returns the bars in render order.
func (s *Set) Bars() []Bar {
	return slices.Clone(s.bars)
}

// Height returns the number of rows the set occupies.
func (s *Set) Height() int {
	return len(s.bars)
}

// Lines renders every bar, in order, truncated to width columns.
func (s *Set) Lines(snap Snapshot, width int) []string {
	lines := make([]string, len(s.bars))
	for i, bar := range s.bars {
		lines[i] = core.Truncate(Render(bar, snap), width)
	}
	return lines
}

// Draw paints the bars on rows top.. of b, each padded to width in the set's
// style.
func (s *Set) Draw(b backend.Backend, snap Snapshot, top, width int) {
	blank := core.Cell{Rune: ' ', Width: 1, Style: s.style}
	for i, line := range s.Lines(snap, width) {
		row := top + i
		b.Fill(core.Rect{Top: row, Left: 0, Bottom: row + 1, Right: width}, blank)
		backend.DrawString(b, 0, row, line, s.style, width)
	}
}
