package cursor

import (
	"iter"
	"unicode/utf8"

	"github.com/dshills/stedit/internal/engine/text"
	"github.com/dshills/stedit/internal/renderer/viewport"
)

// Field is a cursor bounded by a viewport over optional content.
type Field struct {
	vp      *viewport.Viewport
	loc     viewport.Location
	content *text.Document
}

// NewField creates a cursor at the top-left cell of vp with no content.
// The viewport is shared, not copied: it stays the single source of truth for
// dimensions and scroll offset.
func NewField(vp *viewport.Viewport) *Field {
	return &Field{vp: vp}
}

// Viewport returns the viewport bounding the cursor.
func (f *Field) Viewport() *viewport.Viewport {
	return f.vp
}

// Load attaches content, replacing any previous document. The cursor and
// scroll offset are left where they are; callers wanting a fresh view reset
// them explicitly. Load(nil) detaches content.
func (f *Field) Load(doc *text.Document) {
	f.content = doc
}

// Content returns the attached document, or nil.
func (f *Field) Content() *text.Document {
	return f.content
}

// Cursor returns the cursor position after clamping it to the viewport.
func (f *Field) Cursor() viewport.Location {
	f.clamp()
	return f.loc
}

// ScreenPosition returns the cursor's screen column and row, clamped to the
// current viewport.
func (f *Field) ScreenPosition() (column, row uint16) {
	f.clamp()
	return f.loc.ColumnIx, f.loc.RowIx
}

// MoveLeft moves the cursor left n columns, stopping at column 0.
func (f *Field) MoveLeft(n uint16) {
	f.clamp()
	if n > f.loc.ColumnIx {
		f.loc.ColumnIx = 0
		return
	}
	f.loc.ColumnIx -= n
}

// MoveRight moves the cursor right n columns. Running past the right edge
// clamps the cursor to the last column and scrolls one column to the right if
// the cursor's line has hidden content there.
func (f *Field) MoveRight(n uint16) {
	f.clamp()
	dims := f.vp.Dimensions()
	if dims.Columns == 0 {
		return
	}

	last := int(dims.Columns) - 1
	next := int(f.loc.ColumnIx) + int(n)
	if next > last {
		f.scrollRight()
		next = last
	}
	f.loc.ColumnIx = uint16(next)
}

// scrollRight advances the horizontal scroll by one column when the line under
// the cursor extends past the visible window.
func (f *Field) scrollRight() {
	if f.content == nil {
		return
	}
	ix := int(f.vp.Scroll().RowIx) + int(f.loc.RowIx)
	if f.content.LineLen(ix) > f.vp.RightColumn() {
		f.vp.ScrollColumnBy(1)
	}
}

// MoveUp moves the cursor up n rows, stopping at row 0.
func (f *Field) MoveUp(n uint16) {
	f.clamp()
	if n > f.loc.RowIx {
		f.loc.RowIx = 0
		return
	}
	f.loc.RowIx -= n
}

// MoveDown moves the cursor down n rows, stopping at the last row.
func (f *Field) MoveDown(n uint16) {
	f.clamp()
	dims := f.vp.Dimensions()
	if dims.Rows == 0 {
		return
	}

	next := int(f.loc.RowIx) + int(n)
	if next >= int(dims.Rows) {
		next = int(dims.Rows) - 1
	}
	f.loc.RowIx = uint16(next)
}

// ScrollTo overwrites the scroll offset. There is no bounds check against the
// content length.
func (f *Field) ScrollTo(column, row uint16) {
	f.vp.ScrollTo(viewport.Location{ColumnIx: column, RowIx: row})
}

// clamp pulls the cursor back inside the viewport after a resize.
func (f *Field) clamp() {
	dims := f.vp.Dimensions()
	if dims.Columns == 0 {
		f.loc.ColumnIx = 0
	} else if f.loc.ColumnIx > dims.Columns-1 {
		f.loc.ColumnIx = dims.Columns - 1
	}
	if dims.Rows == 0 {
		f.loc.RowIx = 0
	} else if f.loc.RowIx > dims.Rows-1 {
		f.loc.RowIx = dims.Rows - 1
	}
}

// VisibleLines yields the visible slice of each content line, one per display
// row, in content order. The sequence is empty without content or with a
// zero-sized viewport, and stops after Rows lines.
//
// State is read when iteration starts, so ranging over the same sequence again
// reflects any moves made in between.
//
// The vertical scroll offset is not applied; line i is always shown on row i.
func (f *Field) VisibleLines() iter.Seq[string] {
	return func(yield func(string) bool) {
		doc := f.content
		dims := f.vp.Dimensions()
		if doc == nil || dims.IsZero() {
			return
		}

		start := int(f.vp.Scroll().ColumnIx)
		width := int(dims.Columns)
		rows := int(dims.Rows)
		for ix, line := range doc.Lines() {
			if ix >= rows {
				return
			}
			if !yield(clip(line, doc.LineLen(ix), start, width)) {
				return
			}
		}
	}
}

// clip returns runes [start, start+width) of line, or "" when the line is
// shorter than start. runes is the rune length of line.
func clip(line string, runes, start, width int) string {
	if start >= runes {
		return ""
	}
	end := min(start+width, runes)

	// ASCII lines index directly.
	if runes == len(line) {
		return line[start:end]
	}

	i, r := 0, 0
	for r < start {
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
		r++
	}
	j := i
	for r < end {
		_, size := utf8.DecodeRuneInString(line[j:])
		j += size
		r++
	}
	return line[i:j]
}
