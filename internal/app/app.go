// Package app wires the cursor field, status bars, configuration and a
// terminal backend into the stedit event loop.
package app

import (
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stedit/internal/config"
	"github.com/dshills/stedit/internal/engine/text"
	"github.com/dshills/stedit/internal/renderer/backend"
	"github.com/dshills/stedit/internal/renderer/core"
	"github.com/dshills/stedit/internal/renderer/cursor"
	"github.com/dshills/stedit/internal/renderer/statusline"
	"github.com/dshills/stedit/internal/renderer/viewport"
)

// Application owns the single cursor field and everything that drives it.
// Apart from SetBackend, Shutdown and Post, its methods must be called from
// the goroutine running Run.
type Application struct {
	mu sync.Mutex

	config   *config.Config
	logger   *Logger
	closeLog func() error
	session  string
	metrics  *Metrics

	viewport *viewport.Viewport
	field    *cursor.Field
	bars     *statusline.Set
	keymap   *Keymap

	step         uint16
	pollInterval time.Duration

	// Last size reported by the backend.
	width, height int

	backend backend.Backend

	running  atomic.Bool
	quit     chan struct{}
	quitOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means defaults and
	// environment only.
	ConfigPath string

	// Config, if set, is used instead of loading one from ConfigPath.
	Config *config.Config

	// File is opened as content on startup.
	File string

	// LogLevel overrides logging.level.
	LogLevel string

	// LogOutput receives log lines. When nil, logging.file is opened, or
	// logs are discarded if it is empty.
	LogOutput io.Writer

	// WatchConfig reloads the configuration when its file changes.
	WatchConfig bool
}

// New builds an application from opts. Nothing touches the terminal until
// Run.
func New(opts Options) (_ *Application, err error) {
	app := &Application{
		opts:    opts,
		session: uuid.NewString(),
		metrics: NewMetrics(),
		quit:    make(chan struct{}),
	}

	app.config = opts.Config
	if app.config == nil {
		app.config = config.New(config.WithFile(opts.ConfigPath))
		if err := app.config.Load(); err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}

	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}
	defer func() {
		if err != nil {
			_ = app.closeLog()
		}
	}()

	vc := app.config.Viewport()
	app.viewport = viewport.New(viewport.Dimensions{
		Columns: clampUint16(vc.Columns),
		Rows:    clampUint16(vc.Rows),
	})
	app.field = cursor.NewField(app.viewport)

	if opts.File != "" {
		if err := app.Open(opts.File); err != nil {
			return nil, err
		}
	}

	if err := app.applyConfig(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	app.Resize(vc.Columns, vc.Rows)

	app.logger.Info("session started")
	return app, nil
}

func (app *Application) initLogger() error {
	lc := app.config.Logging()
	level := lc.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}

	app.closeLog = func() error { return nil }
	out := app.opts.LogOutput
	if out == nil {
		w, closeFn, err := OpenLogOutput(lc.File)
		if err != nil {
			return err
		}
		out, app.closeLog = w, closeFn
	}

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(level),
		Output: out,
		Prefix: "stedit",
	}).WithField("session", app.session)
	return nil
}

// applyConfig rebuilds everything derived from the configuration. On error
// the previous bars and keymap stay in place.
func (app *Application) applyConfig() error {
	bc := app.config.Bars()
	bars, err := statusline.ParseSet(barStyle(bc, app.logger), bc.Enabled)
	if err != nil {
		return err
	}

	km, err := NewKeymap(app.config.Keys())
	if err != nil {
		app.logger.WithComponent("keymap").Warn("%v", err)
	}

	in := app.config.Input()
	app.bars = bars
	app.keymap = km
	app.step = clampUint16(in.Step)
	app.pollInterval = in.PollInterval

	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(app.config.Logging().Level))
	}
	return nil
}

func barStyle(bc config.BarsConfig, log *Logger) core.Style {
	style := core.DefaultStyle()
	if fg, err := core.ParseColor(bc.Foreground); err != nil {
		log.WithComponent("bars").Warn("foreground: %v", err)
	} else {
		style = style.WithForeground(fg)
	}
	if bg, err := core.ParseColor(bc.Background); err != nil {
		log.WithComponent("bars").Warn("background: %v", err)
	} else {
		style = style.WithBackground(bg)
	}
	if bc.Reverse {
		style = style.With(core.AttrReverse)
	}
	return style
}

// Open loads the file at path as the field's content.
func (app *Application) Open(path string) error {
	doc, err := text.ReadFile(path)
	if err != nil {
		return NewOperationError("open", path, err)
	}
	app.field.Load(doc)
	app.logger.Info("opened %s (%d lines, %s)", path, doc.LineCount(), doc.LineEnding())
	return nil
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Shutdown asks a running loop to return. It is safe to call more than once
// and from any goroutine.
func (app *Application) Shutdown() {
	app.quitOnce.Do(func() {
		close(app.quit)
	})
}

// Post queues ev on the backend as if the terminal had produced it.
func (app *Application) Post(ev backend.Event) error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()

	if !app.running.Load() || b == nil {
		return ErrNotRunning
	}
	b.PostEvent(ev)
	return nil
}

// Execute applies cmd to the field. CommandQuit yields ErrQuit.
func (app *Application) Execute(cmd Command) error {
	switch cmd {
	case CommandMoveLeft:
		app.field.MoveLeft(app.step)
	case CommandMoveRight:
		app.field.MoveRight(app.step)
	case CommandMoveUp:
		app.field.MoveUp(app.step)
	case CommandMoveDown:
		app.field.MoveDown(app.step)
	case CommandPageUp:
		app.field.MoveUp(app.viewport.Rows())
	case CommandPageDown:
		app.field.MoveDown(app.viewport.Rows())
	case CommandScrollHome:
		app.field.ScrollTo(0, 0)
	case CommandQuit:
		return ErrQuit
	case CommandNone:
	default:
		return fmt.Errorf("unknown command %d", cmd)
	}
	return nil
}

// Resize records a terminal size and gives the viewport the area above the
// bars.
func (app *Application) Resize(width, height int) {
	app.width, app.height = width, height
	rows := max(height-app.bars.Height(), 0)
	app.viewport.Resize(viewport.Dimensions{
		Columns: clampUint16(width),
		Rows:    clampUint16(rows),
	})
	app.logger.Debug("resized to %dx%d, viewport %v", width, height, app.viewport.Dimensions())
}

// Close releases the log file, if one was opened.
func (app *Application) Close() error {
	app.logger.Info("session ended after %d frames", app.metrics.Frames())
	return app.closeLog()
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Session returns the id carried by every log line of this run.
func (app *Application) Session() string {
	return app.session
}

// Field returns the cursor field.
func (app *Application) Field() *cursor.Field {
	return app.field
}

// Metrics returns the frame counter.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Bars returns the active status bars.
func (app *Application) Bars() *statusline.Set {
	return app.bars
}

func clampUint16(n int) uint16 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(n)
	}
}
