package app

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/dshills/stedit/internal/script"
)

// HeadlessSize returns the size of the terminal on fd, or the configured
// viewport size when fd is not a terminal.
func (app *Application) HeadlessSize(fd int) (width, height int) {
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	vc := app.config.Viewport()
	return vc.Columns, vc.Rows
}

// RunScript executes the Lua file at path against the cursor field.
func (app *Application) RunScript(path string) error {
	s := script.NewState(app.field)
	defer s.Close()

	if err := s.DoFile(path); err != nil {
		return NewOperationError("run script", path, err)
	}
	c, r := app.field.ScreenPosition()
	app.logger.WithComponent("script").Info("ran %s, cursor at %d,%d", path, c, r)
	return nil
}

// Dump writes the current frame as plain text: the visible lines, the bars,
// and a final cursor line. Call Resize first to set the frame size.
func (app *Application) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for line := range app.field.VisibleLines() {
		fmt.Fprintln(bw, line)
	}
	for _, line := range app.bars.Lines(app.snapshot(), app.width) {
		fmt.Fprintln(bw, line)
	}
	c, r := app.field.ScreenPosition()
	fmt.Fprintf(bw, "cursor: %d, %d\n", c, r)

	if err := bw.Flush(); err != nil {
		return NewOperationError("dump", "", err)
	}
	return nil
}
