// Package core provides the cell and style types shared by the backends and
// the status bars. It has no dependencies on the rest of the renderer so both
// sides can import it.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute is a set of text attributes.
type Attribute uint8

// Text attribute flags.
const (
	AttrNone    Attribute = 0
	AttrBold    Attribute = 1 << (iota - 1)
	AttrDim               // Faint text
	AttrItalic            // Italic text
	AttrUnderline         // Underlined text
	AttrReverse           // Swap foreground and background
)

// Has returns true if the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a terminal color: the terminal default, a palette index, or RGB.
type Color struct {
	R, G, B uint8
	// Indexed means R holds a palette index and G, B are unused.
	Indexed bool
	// Default selects the terminal's own color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// namedColors maps the basic ANSI names to their palette index.
var namedColors = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
	"gray":    8,
	"grey":    8,
}

// RGB returns a true color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Palette returns an indexed palette color.
func Palette(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ParseColor parses a color name as it appears in configuration:
// "default" or "", a basic ANSI name ("blue"), a palette index ("236"), or a
// hex triple ("#1e1e2e" or "#fff").
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return ColorDefault, nil
	}
	if idx, ok := namedColors[s]; ok {
		return Palette(idx), nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Palette(uint8(n)), nil
}

func parseHex(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: #%s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: #%s", hex)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// String returns the color in the form ParseColor accepts.
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return strconv.Itoa(int(c.R))
	default:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a copy of s with the foreground set.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a copy of s with the background set.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// With returns a copy of s with attr added.
func (s Style) With(attr Attribute) Style {
	s.Attributes |= attr
	return s
}

// Cell is a single terminal cell.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell for r in the given style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// RuneWidth returns the number of terminal columns r occupies.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of terminal columns s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s so it fits in width columns.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

// Rect is a rectangular screen region. Bottom and Right are exclusive.
type Rect struct {
	Top, Left, Bottom, Right int
}

// Width returns the number of columns in r.
func (r Rect) Width() int {
	return max(0, r.Right-r.Left)
}

// Height returns the number of rows in r.
func (r Rect) Height() int {
	return max(0, r.Bottom-r.Top)
}

// IsEmpty returns true if r covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains returns true if the cell at x, y lies inside r.
func (r Rect) Contains(x, y int) bool {
	return y >= r.Top && y < r.Bottom && x >= r.Left && x < r.Right
}
