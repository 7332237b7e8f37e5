package app

import (
	"context"
	"time"

	"github.com/dshills/stedit/internal/config/watcher"
	"github.com/dshills/stedit/internal/renderer/backend"
)

// Run initializes the backend and runs the event loop until the quit
// command (ErrQuit), Shutdown or ctx cancellation (nil).
//
// Each iteration waits up to the poll interval for one event, applies it,
// renders a frame and ticks the frame counter.
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()

	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	// Closed before the backend shuts down, so the pump sees it as soon as
	// PollEvent unblocks.
	stop := make(chan struct{})
	defer close(stop)

	events := app.startInputPolling(b, stop)
	reloads := app.startConfigWatch(stop)

	app.Resize(b.Size())
	app.logger.Info("running at %dx%d", app.width, app.height)

	return app.eventLoop(ctx, b, events, reloads)
}

func (app *Application) eventLoop(ctx context.Context, b backend.Backend, events <-chan backend.Event, reloads <-chan struct{}) error {
	timer := time.NewTimer(app.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("context done: %v", ctx.Err())
			return nil

		case <-app.quit:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}

		case _, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			app.reloadConfig()

		case <-timer.C:
		}

		start := time.Now()
		app.render(b)
		app.frameDone(time.Since(start))

		timer.Reset(app.pollInterval)
	}
}

// frameDone counts a rendered frame that took d to produce.
func (app *Application) frameDone(d time.Duration) {
	app.metrics.RecordFrame(d)
	app.metrics.Tick()
	if last := app.metrics.LastFrame(); last > app.pollInterval {
		app.logger.Debug("slow frame: %v (poll interval %v)", last, app.pollInterval)
	}
}

// handleBackendEvent applies one event. Returns ErrQuit if the application
// should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.Resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		cmd := app.keymap.Lookup(ev)
		if cmd == CommandNone {
			app.logger.Debug("unbound key %q", ev.KeyName())
			return nil
		}
		return app.Execute(cmd)
	default:
		return nil
	}
}

// startInputPolling pumps backend events onto a channel from its own
// goroutine, since PollEvent blocks. The goroutine exits once stop is closed
// and PollEvent returns, which Shutdown on the backend guarantees.
func (app *Application) startInputPolling(b backend.Backend, stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := b.PollEvent()

			select {
			case <-stop:
				return
			default:
			}

			if ev.Type == backend.EventNone {
				continue
			}

			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	return events
}

// startConfigWatch returns a channel that fires when the config file
// changes, or nil when there is nothing to watch.
func (app *Application) startConfigWatch(stop <-chan struct{}) <-chan struct{} {
	path := app.config.Path()
	if !app.opts.WatchConfig || path == "" {
		return nil
	}

	log := app.logger.WithComponent("config")
	w, err := watcher.New(path, 0)
	if err != nil {
		log.Warn("not watching %s: %v", path, err)
		return nil
	}

	go func() {
		for err := range w.Errors() {
			log.Warn("watch: %v", err)
		}
	}()
	go func() {
		<-stop
		_ = w.Close()
	}()

	log.Debug("watching %s", w.Path())
	return w.Changes()
}

// reloadConfig re-reads every layer and reapplies it. A broken file is
// logged and the running configuration kept.
func (app *Application) reloadConfig() {
	log := app.logger.WithComponent("config")
	if err := app.config.Load(); err != nil {
		log.Warn("reload failed: %v", err)
		return
	}
	if err := app.applyConfig(); err != nil {
		log.Warn("reload failed: %v", err)
		return
	}
	app.Resize(app.width, app.height)
	log.Info("reloaded %s", app.config.Path())
}
