package app

import (
	"github.com/dshills/stedit/internal/renderer/backend"
	"github.com/dshills/stedit/internal/renderer/core"
	"github.com/dshills/stedit/internal/renderer/statusline"
)

// render draws one frame: visible lines from the top, bars along the
// bottom, then the cursor.
func (app *Application) render(b backend.Backend) {
	b.Clear()

	row := 0
	for line := range app.field.VisibleLines() {
		backend.DrawString(b, 0, row, line, core.DefaultStyle(), app.width)
		row++
	}

	top := max(app.height-app.bars.Height(), 0)
	app.bars.Draw(b, app.snapshot(), top, app.width)

	if app.viewport.Dimensions().IsZero() {
		b.HideCursor()
	} else {
		col, r := app.field.ScreenPosition()
		b.ShowCursor(int(col), int(r))
	}

	b.Show()
}

// snapshot collects what the bars display. Dimensions are the terminal's,
// not the viewport's.
func (app *Application) snapshot() statusline.Snapshot {
	snap := statusline.Snapshot{
		Columns: clampUint16(app.width),
		Rows:    clampUint16(app.height),
		Uptime:  app.metrics.Uptime(),
		Frames:  app.metrics.Frames(),
		FPS:     app.metrics.FPS(),
	}
	if doc := app.field.Content(); doc != nil {
		snap.Path = doc.Path()
	}
	loc := app.field.Cursor()
	snap.CursorColumn, snap.CursorRow = loc.ColumnIx, loc.RowIx
	return snap
}
