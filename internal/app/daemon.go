package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/depeter/mousebind/internal/action"
	"github.com/depeter/mousebind/internal/binding"
	"github.com/depeter/mousebind/internal/capture"
	"github.com/depeter/mousebind/internal/config"
)

// Options configure a daemon run.
type Options struct {
	Config     *config.Config
	DevicePath string // -device flag; overrides device_by_path and backend selection
	Backend    string // "auto", "evdev" or "x11"
	Grab       bool   // -grab flag; or'd with the config's grab key
}

// Run builds the pipeline from opts and consumes events until ctx is
// cancelled or every capture source is exhausted. A startup failure
// returns an error; a clean shutdown returns nil.
func Run(ctx context.Context, opts Options) error {
	table, err := opts.Config.Table()
	if err != nil {
		return err
	}
	if len(table) == 0 {
		slog.Warn("no bindings configured; nothing will be dispatched")
	}

	devicePath := opts.DevicePath
	if devicePath == "" {
		devicePath = opts.Config.DeviceByPath
	}

	useX11 := false
	switch opts.Backend {
	case "", "auto":
		useX11 = devicePath == "" && capture.IsX11Session()
	case "x11":
		useX11 = true
		if devicePath != "" {
			slog.Warn("the x11 backend reads no device nodes; ignoring -device", "path", devicePath)
		}
	case "evdev":
	default:
		return fmt.Errorf("unknown backend %q", opts.Backend)
	}

	var grabs binding.GrabSet
	if opts.Grab || opts.Config.Grab {
		if useX11 {
			grabs = binding.NewGrabSet(table.Buttons()...)
		} else {
			slog.Warn("grabbing is only supported by the x11 backend; ignoring")
		}
	}

	var (
		backend  capture.Backend
		injector action.KeyInjector
	)
	if useX11 {
		b, err := capture.OpenX11(table, grabs)
		if err != nil {
			return err
		}
		backend = b
		if inj, err := action.NewXTestInjector(); err != nil {
			slog.Warn("xtest injection unavailable, key combos disabled", "err", err)
		} else {
			injector = inj
		}
	} else {
		var (
			b   *capture.EvdevBackend
			err error
		)
		if devicePath != "" {
			b, err = capture.OpenEvdevDevice(devicePath)
		} else {
			b, err = capture.OpenEvdev(table)
		}
		if err != nil {
			return err
		}
		backend = b
		if keys := table.KeyComboKeys(); len(keys) > 0 {
			if inj, err := action.NewUinputInjector(keys); err != nil {
				slog.Warn("uinput injection unavailable, key combos disabled", "err", err)
			} else {
				injector = inj
			}
		}
	}

	executor := action.NewExecutor(injector)
	defer func() {
		if err := executor.Close(); err != nil {
			slog.Warn("closing key injector", "err", err)
		}
	}()

	return runLoop(ctx, backend, NewDispatcher(table, executor))
}

// runLoop is the single consumer line: every backend event passes the
// debouncer and then the dispatcher, in order. It returns nil both on
// cancellation and on stream exhaustion.
func runLoop(ctx context.Context, backend capture.Backend, disp *Dispatcher) error {
	defer backend.Close()

	deb := capture.NewDebouncer()
	events := backend.Events()
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			backend.Close()
			// Drain so blocked producers can exit and release their
			// devices before we return.
			for range events {
			}
			return nil
		case ev, ok := <-events:
			if !ok {
				slog.Info("all capture sources exhausted")
				return nil
			}
			if !deb.Pass(ev) {
				continue
			}
			disp.Dispatch(ev)
		}
	}
}
