package backend

import (
	"testing"
	"time"

	"github.com/dshills/stedit/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cell := core.NewCell('X', core.DefaultStyle().WithForeground(core.Palette(1)))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("expected %+v, got %+v", cell, got)
	}

	// Out of bounds writes are ignored, reads are empty.
	b.SetCell(-1, 0, cell)
	b.SetCell(80, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Errorf("expected empty cell, got %+v", got)
	}
}

func TestNullBackendFillAndClear(t *testing.T) {
	b := NewNullBackend(20, 10)
	dot := core.NewCell('.', core.DefaultStyle())

	b.Fill(core.Rect{Top: 2, Left: 3, Bottom: 4, Right: 30}, dot)

	if got := b.GetCell(19, 3); got != dot {
		t.Error("fill should clip to the display, not skip the row")
	}
	if got := b.GetCell(2, 2); got == dot {
		t.Error("cell left of rect should not be filled")
	}
	if got := b.Line(2); got != "   ................." {
		t.Errorf("unexpected row %q", got)
	}

	b.Clear()
	if got := b.Line(2); got != "" {
		t.Errorf("expected blank row after clear, got %q", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.ShowCursor(15, 10)
	x, y, visible := b.CursorPosition()
	if x != 15 || y != 10 || !visible {
		t.Errorf("expected (15, 10, true), got (%d, %d, %v)", x, y, visible)
	}

	b.HideCursor()
	if _, _, visible = b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendResizePostsEvent(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.Resize(100, 40)

	if w, h := b.Size(); w != 100 || h != 40 {
		t.Errorf("expected size (100, 40), got (%d, %d)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 40 {
		t.Errorf("expected resize event, got %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.PostEvent(Event{Type: EventKey, Key: KeyEnter})

	got := b.PollEvent()
	if got.Type != EventKey || got.Key != KeyEnter {
		t.Errorf("expected enter key event, got %+v", got)
	}
}

func TestNullBackendShutdownUnblocksPoll(t *testing.T) {
	b := NewNullBackend(80, 24)
	done := make(chan Event, 1)

	go func() { done <- b.PollEvent() }()
	b.Shutdown()
	b.Shutdown()

	select {
	case ev := <-done:
		if ev.Type != EventNone {
			t.Errorf("expected EventNone, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl

	if !mod.Has(ModShift) || !mod.Has(ModCtrl) {
		t.Error("expected shift and ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Type: EventKey, Key: KeyRune, Rune: 'h'}, "h"},
		{Event{Type: EventKey, Key: KeyRune, Rune: '0'}, "0"},
		{Event{Type: EventKey, Key: KeyRune, Rune: 'c', Mod: ModCtrl}, "Ctrl-C"},
		{Event{Type: EventKey, Key: KeyUp}, "Up"},
		{Event{Type: EventKey, Key: KeyPageDown}, "PgDn"},
		{Event{Type: EventKey, Key: KeyEscape}, "Esc"},
		{Event{Type: EventKey, Key: KeyNone}, ""},
		{Event{Type: EventResize, Width: 10, Height: 10}, ""},
	}

	for _, tt := range tests {
		if got := tt.ev.KeyName(); got != tt.want {
			t.Errorf("expected %q, got %q for %+v", tt.want, got, tt.ev)
		}
	}
}

func TestDrawString(t *testing.T) {
	b := NewNullBackend(10, 2)
	style := core.DefaultStyle().With(core.AttrBold)

	n := DrawString(b, 1, 0, "hello world", style, 5)

	if n != 5 {
		t.Errorf("expected 5 columns, got %d", n)
	}
	if got := b.Line(0); got != " hello" {
		t.Errorf("expected %q, got %q", " hello", got)
	}
	if got := b.GetCell(1, 0).Style; got != style {
		t.Errorf("expected bold style, got %+v", got)
	}
}

func TestDrawStringWide(t *testing.T) {
	b := NewNullBackend(10, 1)

	// The third rune would straddle the limit.
	n := DrawString(b, 0, 0, "日本語", core.DefaultStyle(), 5)

	if n != 4 {
		t.Errorf("expected 4 columns, got %d", n)
	}
	if got := b.Line(0); got != "日本" {
		t.Errorf("expected %q, got %q", "日本", got)
	}
}
