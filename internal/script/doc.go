// Package script runs Lua scripts against a cursor field.
//
// Scripts see a restricted standard library (base, table, string and math;
// no io, os, debug or package loading) and one global table, editor:
//
//	editor.move_left(n)      editor.move_right(n)
//	editor.move_up(n)        editor.move_down(n)
//	editor.scroll_to(c, r)
//	editor.cursor()          -- returns column, row
//	editor.dimensions()      -- returns columns, rows
//	editor.visible_lines()   -- returns an array of strings
//
// Movement magnitudes default to 1 and saturate at 65535. Negative or
// non-numeric arguments raise a Lua argument error.
//
// A State is not safe for concurrent use. It must run on the goroutine that
// owns the field.
package script
