// Package cursor provides the cursor field: a single cursor bounded by a
// viewport, together with the content it moves over.
//
// The field owns three pieces of behavior:
//
//   - Movement. MoveLeft, MoveRight, MoveUp and MoveDown take an unsigned
//     magnitude and clamp the cursor to the viewport. Moving by 0 is a no-op
//     and a magnitude larger than the viewport lands on the boundary.
//   - Auto-scroll. A MoveRight that runs past the right edge advances the
//     horizontal scroll offset by exactly one column, and only while the
//     cursor's line still has hidden content to the right. Larger jumps need
//     repeated calls. Leftward moves never scroll.
//   - Projection. VisibleLines yields the horizontally clipped slice of each
//     content line that falls inside the viewport, one per display row.
//
// Resizing the viewport does not touch the cursor. The field re-clamps on its
// next operation, so several resizes can happen between two renders.
//
// Basic usage:
//
//	vp := viewport.New(viewport.Dimensions{Columns: 80, Rows: 24})
//	field := cursor.NewField(vp)
//	field.Load(text.New("First\nSecond"))
//	field.MoveRight(10)
//	for line := range field.VisibleLines() {
//	    // draw line
//	}
//	col, row := field.ScreenPosition()
//
// A Field is owned by one event loop and is not safe for concurrent use.
package cursor
