// Package viewport provides the display geometry for the renderer.
package viewport

import "math"

// Dimensions is the size of a display region in screen cells.
type Dimensions struct {
	Columns uint16
	Rows    uint16
}

// DefaultDimensions returns the size used when no display reports one.
func DefaultDimensions() Dimensions {
	return Dimensions{Columns: 80, Rows: 24}
}

// IsZero returns true if the region has no visible rows or no visible columns.
func (d Dimensions) IsZero() bool {
	return d.Columns == 0 || d.Rows == 0
}

// Location is a zero-based column/row pair.
//
// For a cursor it is relative to the screen; for a scroll offset it is a
// position in content coordinates.
type Location struct {
	ColumnIx uint16
	RowIx    uint16
}

// Viewport represents the visible portion of the content: its size and the
// content position mapped to its top-left cell.
//
// A Viewport is owned by a single event loop and is not safe for concurrent use.
type Viewport struct {
	dims   Dimensions
	scroll Location
}

// New creates a viewport with the given size and no scroll offset.
func New(dims Dimensions) *Viewport {
	return &Viewport{dims: dims}
}

// Resize replaces the viewport size.
// Zero dimensions are accepted and mean nothing is visible. Resize never moves
// a cursor; cursors re-clamp on their next operation.
func (v *Viewport) Resize(dims Dimensions) {
	v.dims = dims
}

// Dimensions returns the current size.
func (v *Viewport) Dimensions() Dimensions {
	return v.dims
}

// Columns returns the viewport width.
func (v *Viewport) Columns() uint16 {
	return v.dims.Columns
}

// Rows returns the viewport height.
func (v *Viewport) Rows() uint16 {
	return v.dims.Rows
}

// Scroll returns the content position shown at the top-left cell.
func (v *Viewport) Scroll() Location {
	return v.scroll
}

// ScrollTo overwrites the scroll offset. No bounds are checked against the
// content: scrolling past the end of short content is a valid, empty view.
func (v *Viewport) ScrollTo(loc Location) {
	v.scroll = loc
}

// ScrollColumnBy moves the horizontal scroll offset by delta columns,
// saturating at both ends of the uint16 range.
func (v *Viewport) ScrollColumnBy(delta int) {
	col := int(v.scroll.ColumnIx) + delta
	switch {
	case col < 0:
		col = 0
	case col > math.MaxUint16:
		col = math.MaxUint16
	}
	v.scroll.ColumnIx = uint16(col)
}

// RightColumn returns the first content column past the visible window.
func (v *Viewport) RightColumn() int {
	return int(v.scroll.ColumnIx) + int(v.dims.Columns)
}
