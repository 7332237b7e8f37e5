package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	path := writeFile(t, "a.txt", "First\r\nSecond\r\nThird\r\n")
	app := newTestApp(t, Options{File: path})
	app.Resize(4, 4) // two text rows, two bars

	var out bytes.Buffer
	if err := app.Dump(&out); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	want := []string{"Firs", "Seco", "[Edi", "[Sta", "cursor: 0, 0"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestRunScriptThenDump(t *testing.T) {
	path := writeFile(t, "a.txt", "First\r\nSecond")
	app := newTestApp(t, Options{File: path})
	app.Resize(4, 3) // one text row

	script := filepath.Join(t.TempDir(), "s.lua")
	if err := os.WriteFile(script, []byte("editor.move_right(4)\neditor.move_right(10)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := app.RunScript(script); err != nil {
		t.Fatalf("RunScript() failed: %v", err)
	}

	var out bytes.Buffer
	if err := app.Dump(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "irst\n") {
		t.Errorf("expected scrolled line first, got %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "cursor: 3, 0\n") {
		t.Errorf("expected cursor 3, 0, got %q", out.String())
	}
}

func TestRunScript_Error(t *testing.T) {
	app := newTestApp(t, Options{})
	script := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(script, []byte("editor.move_left(-1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := app.RunScript(script)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Target != script {
		t.Errorf("expected OperationError for %s, got %v", script, err)
	}
}

func TestHeadlessSize_NotATerminal(t *testing.T) {
	app := newTestApp(t, Options{})

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w, h := app.HeadlessSize(int(f.Fd()))
	if w != 80 || h != 24 {
		t.Errorf("expected configured 80x24, got %dx%d", w, h)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDump_WriteError(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Dump(failWriter{}); err == nil {
		t.Error("expected write error")
	}
}
