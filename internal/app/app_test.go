package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/stedit/internal/config"
	"github.com/dshills/stedit/internal/renderer/backend"
	"github.com/dshills/stedit/internal/renderer/core"
	"github.com/dshills/stedit/internal/renderer/viewport"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.Config == nil {
		opts.Config = config.New(config.WithEnvPrefix(""))
	}
	if opts.LogOutput == nil {
		opts.LogOutput = &bytes.Buffer{}
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// runApp starts Run on b and returns a channel carrying its result.
func runApp(t *testing.T, app *Application, b backend.Backend) <-chan error {
	t.Helper()
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		done <- app.Run(context.Background())
	}()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestNewApplication(t *testing.T) {
	var logs bytes.Buffer
	app := newTestApp(t, Options{LogOutput: &logs})

	if app.Config() == nil || app.Field() == nil || app.Metrics() == nil || app.Logger() == nil {
		t.Fatal("expected components to be initialized")
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}

	dims := app.Field().Viewport().Dimensions()
	if dims != (viewport.Dimensions{Columns: 80, Rows: 22}) {
		t.Errorf("expected 80x22 viewport below two bars, got %v", dims)
	}
	if app.Bars().Height() != 2 {
		t.Errorf("expected 2 default bars, got %d", app.Bars().Height())
	}

	if !strings.Contains(logs.String(), "session="+app.Session()) {
		t.Errorf("expected session field in logs, got: %s", logs.String())
	}
}

func TestNew_OpenFile(t *testing.T) {
	path := writeFile(t, "a.txt", "alpha\r\nbeta\r\n")
	app := newTestApp(t, Options{File: path})

	doc := app.Field().Content()
	if doc == nil || doc.Path() != path {
		t.Fatalf("expected content from %s", path)
	}
	if doc.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.LineCount())
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(Options{
		Config:    config.New(config.WithEnvPrefix("")),
		LogOutput: &bytes.Buffer{},
		File:      filepath.Join(t.TempDir(), "missing.txt"),
	})
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Errorf("expected open OperationError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestNew_BadConfig(t *testing.T) {
	path := writeFile(t, "stedit.toml", "[bars]\nenabled = [\"clock\"]\n")
	_, err := New(Options{ConfigPath: path, LogOutput: &bytes.Buffer{}})

	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Errorf("expected config InitError, got %v", err)
	}
}

func TestRun_NoBackend(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestRun_KeysAndQuit(t *testing.T) {
	path := writeFile(t, "a.txt", "alpha\nbeta\ngamma\n")
	app := newTestApp(t, Options{File: path})
	b := backend.NewNullBackend(20, 6)

	b.PostEvent(keyRune('l'))
	b.PostEvent(keyRune('l'))
	b.PostEvent(keySpecial(backend.KeyDown))
	b.PostEvent(keyRune('x'))
	b.PostEvent(keyRune('q'))

	if err := waitRun(t, runApp(t, app, b)); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	loc := app.Field().Cursor()
	if loc.ColumnIx != 2 || loc.RowIx != 1 {
		t.Errorf("expected cursor 2,1, got %d,%d", loc.ColumnIx, loc.RowIx)
	}
	if dims := app.Field().Viewport().Dimensions(); dims != (viewport.Dimensions{Columns: 20, Rows: 4}) {
		t.Errorf("expected 20x4 viewport, got %v", dims)
	}

	for i, want := range []string{"alpha", "beta", "gamma", ""} {
		if got := b.Line(i); got != want {
			t.Errorf("row %d: expected %q, got %q", i, want, got)
		}
	}
	if got := b.Line(4); !strings.HasPrefix(got, "[Editor Info] Cols:") {
		t.Errorf("expected editor info bar on row 4, got %q", got)
	}
	if got := b.Line(5); !strings.HasPrefix(got, "[Status] File") {
		t.Errorf("expected status bar on row 5, got %q", got)
	}

	x, y, visible := b.CursorPosition()
	if !visible || x != 2 || y != 1 {
		t.Errorf("expected visible cursor at 2,1, got %d,%d (%v)", x, y, visible)
	}
	if b.ShowCount() == 0 {
		t.Error("expected frames to be shown")
	}
	if app.Metrics().Frames() == 0 {
		t.Error("expected frames to be counted")
	}
	if app.IsRunning() {
		t.Error("expected not running after Run returns")
	}
}

func TestRun_Resize(t *testing.T) {
	app := newTestApp(t, Options{})
	b := backend.NewNullBackend(20, 6)

	for range 30 {
		b.PostEvent(keyRune('l'))
	}
	b.Resize(8, 5)
	b.PostEvent(keyRune('q'))

	if err := waitRun(t, runApp(t, app, b)); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if dims := app.Field().Viewport().Dimensions(); dims != (viewport.Dimensions{Columns: 8, Rows: 3}) {
		t.Errorf("expected 8x3 viewport, got %v", dims)
	}
	if loc := app.Field().Cursor(); loc.ColumnIx != 7 {
		t.Errorf("expected cursor clamped to column 7, got %d", loc.ColumnIx)
	}
}

func TestRun_TooSmallForViewport(t *testing.T) {
	app := newTestApp(t, Options{})
	b := backend.NewNullBackend(10, 2)

	b.PostEvent(keyRune('j'))
	b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	b.PostEvent(keyRune('q'))

	if err := waitRun(t, runApp(t, app, b)); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if loc := app.Field().Cursor(); loc != (viewport.Location{}) {
		t.Errorf("expected cursor 0,0 in empty viewport, got %v", loc)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("expected hidden cursor")
	}
}

func TestRun_Shutdown(t *testing.T) {
	app := newTestApp(t, Options{})
	done := runApp(t, app, backend.NewNullBackend(20, 6))

	app.Shutdown()
	app.Shutdown()

	if err := waitRun(t, done); err != nil {
		t.Errorf("expected nil after Shutdown, got %v", err)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.SetBackend(backend.NewNullBackend(20, 6)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		t.Errorf("expected nil on cancel, got %v", err)
	}
	if app.Metrics().Frames() == 0 {
		t.Error("expected idle frames while waiting")
	}
}

func TestRun_AlreadyRunning(t *testing.T) {
	app := newTestApp(t, Options{})
	b := backend.NewNullBackend(20, 6)
	done := runApp(t, app, b)

	deadline := time.Now().Add(5 * time.Second)
	for !app.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("Run did not start")
		}
		time.Sleep(time.Millisecond)
	}

	if err := app.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := app.SetBackend(b); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning from SetBackend, got %v", err)
	}
	if err := app.Post(keyRune('q')); err != nil {
		t.Errorf("Post() failed: %v", err)
	}

	if err := waitRun(t, done); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestPost_NotRunning(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Post(keyRune('q')); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}

func TestExecute(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Resize(80, 12) // viewport 80x10

	steps := []struct {
		cmd     Command
		wantCol uint16
		wantRow uint16
		wantErr error
	}{
		{CommandMoveRight, 1, 0, nil},
		{CommandPageDown, 1, 9, nil},
		{CommandPageUp, 1, 0, nil},
		{CommandMoveDown, 1, 1, nil},
		{CommandScrollHome, 1, 1, nil},
		{CommandMoveLeft, 0, 1, nil},
		{CommandMoveUp, 0, 0, nil},
		{CommandNone, 0, 0, nil},
		{CommandQuit, 0, 0, ErrQuit},
	}

	for _, s := range steps {
		err := app.Execute(s.cmd)
		if !errors.Is(err, s.wantErr) {
			t.Errorf("%s: expected error %v, got %v", s.cmd, s.wantErr, err)
		}
		loc := app.Field().Cursor()
		if loc.ColumnIx != s.wantCol || loc.RowIx != s.wantRow {
			t.Errorf("%s: expected %d,%d, got %d,%d", s.cmd, s.wantCol, s.wantRow, loc.ColumnIx, loc.RowIx)
		}
	}

	if err := app.Execute(Command(99)); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestExecute_Step(t *testing.T) {
	path := writeFile(t, "stedit.toml", "[input]\nstep = 5\n")
	cfg := config.New(config.WithFile(path), config.WithEnvPrefix(""))
	if err := cfg.Load(); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, Options{Config: cfg})

	_ = app.Execute(CommandMoveRight)
	_ = app.Execute(CommandMoveDown)
	if loc := app.Field().Cursor(); loc.ColumnIx != 5 || loc.RowIx != 5 {
		t.Errorf("expected 5,5, got %d,%d", loc.ColumnIx, loc.RowIx)
	}
}

func TestExecute_ScrollHome(t *testing.T) {
	path := writeFile(t, "wide.txt", strings.Repeat("x", 100)+"\n")
	app := newTestApp(t, Options{File: path})
	app.Resize(10, 5)

	for range 12 {
		_ = app.Execute(CommandMoveRight)
	}
	if app.Field().Viewport().Scroll().ColumnIx == 0 {
		t.Fatal("expected horizontal scroll")
	}

	_ = app.Execute(CommandScrollHome)
	if scroll := app.Field().Viewport().Scroll(); scroll != (viewport.Location{}) {
		t.Errorf("expected scroll reset, got %v", scroll)
	}
}

func TestReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stedit.yaml")
	if err := os.WriteFile(path, []byte("bars:\n  enabled: [status]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	cfg := config.New(config.WithFile(path), config.WithEnvPrefix(""))
	if err := cfg.Load(); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, Options{Config: cfg, LogOutput: &logs})
	app.Resize(40, 10)

	if app.Bars().Height() != 1 {
		t.Fatalf("expected 1 bar, got %d", app.Bars().Height())
	}

	content := "bars:\n  enabled: [editor_info, status, performance]\ninput:\n  step: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	app.reloadConfig()

	if app.Bars().Height() != 3 {
		t.Errorf("expected 3 bars after reload, got %d", app.Bars().Height())
	}
	if rows := app.Field().Viewport().Rows(); rows != 7 {
		t.Errorf("expected viewport to shrink to 7 rows, got %d", rows)
	}
	_ = app.Execute(CommandMoveRight)
	if col := app.Field().Cursor().ColumnIx; col != 2 {
		t.Errorf("expected step 2 after reload, got column %d", col)
	}

	if err := os.WriteFile(path, []byte("bars: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app.reloadConfig()
	if app.Bars().Height() != 3 {
		t.Errorf("expected bars kept after failed reload, got %d", app.Bars().Height())
	}
	if !strings.Contains(logs.String(), "reload failed") {
		t.Errorf("expected reload failure logged, got: %s", logs.String())
	}
}

func TestBarStyle(t *testing.T) {
	style := barStyle(config.BarsConfig{Foreground: "red", Background: "nope", Reverse: true}, NullLogger)

	if style.Foreground.Default {
		t.Error("expected red foreground")
	}
	if !style.Background.Default {
		t.Error("expected invalid background to fall back to default")
	}
	if !style.Attributes.Has(core.AttrReverse) {
		t.Error("expected reverse attribute")
	}
}

func TestFrameDone_LogsSlowFrames(t *testing.T) {
	var logs bytes.Buffer
	app := newTestApp(t, Options{LogLevel: "debug", LogOutput: &logs})

	app.frameDone(time.Millisecond)
	if strings.Contains(logs.String(), "slow frame") {
		t.Errorf("expected no slow frame log, got %q", logs.String())
	}

	app.frameDone(time.Second)
	if !strings.Contains(logs.String(), "slow frame: 1s") {
		t.Errorf("expected slow frame log, got %q", logs.String())
	}
	if app.Metrics().Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", app.Metrics().Frames())
	}
	if app.Metrics().LastFrame() != time.Second {
		t.Errorf("expected last frame 1s, got %v", app.Metrics().LastFrame())
	}
}
