package script

import (
	"math"

	lua "github.com/yuin/gopher-lua"
)

func (s *State) installEditor() {
	mod := s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"move_left":     s.move(s.field.MoveLeft),
		"move_right":    s.move(s.field.MoveRight),
		"move_up":       s.move(s.field.MoveUp),
		"move_down":     s.move(s.field.MoveDown),
		"scroll_to":     s.scrollTo,
		"cursor":        s.cursor,
		"dimensions":    s.dimensions,
		"visible_lines": s.visibleLines,
	})
	s.L.SetGlobal("editor", mod)
}

func (s *State) move(fn func(uint16)) lua.LGFunction {
	return func(L *lua.LState) int {
		fn(checkMagnitude(L, 1, 1))
		return 0
	}
}

func (s *State) scrollTo(L *lua.LState) int {
	col := checkMagnitude(L, 1, 0)
	row := checkMagnitude(L, 2, 0)
	s.field.ScrollTo(col, row)
	return 0
}

func (s *State) cursor(L *lua.LState) int {
	loc := s.field.Cursor()
	L.Push(lua.LNumber(loc.ColumnIx))
	L.Push(lua.LNumber(loc.RowIx))
	return 2
}

func (s *State) dimensions(L *lua.LState) int {
	dims := s.field.Viewport().Dimensions()
	L.Push(lua.LNumber(dims.Columns))
	L.Push(lua.LNumber(dims.Rows))
	return 2
}

func (s *State) visibleLines(L *lua.LState) int {
	t := L.NewTable()
	for line := range s.field.VisibleLines() {
		t.Append(lua.LString(line))
	}
	L.Push(t)
	return 1
}

// checkMagnitude reads an optional non-negative integer argument, saturated
// to the uint16 range.
func checkMagnitude(L *lua.LState, n int, def int) uint16 {
	v := L.OptInt64(n, int64(def))
	if v < 0 {
		L.ArgError(n, "must not be negative")
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
