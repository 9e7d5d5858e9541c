// Package action executes bound actions: external command spawning and
// synthesized key input.
package action

import (
	"log/slog"

	"github.com/depeter/mousebind/internal/binding"
)

// KeyInjector synthesizes key presses in whatever privilege domain the
// active capture backend runs in: XTEST under X11, a uinput virtual
// keyboard otherwise.
type KeyInjector interface {
	Inject(keys []string) error
	Close() error
}

// Executor routes a bound action to its sink. A nil injector means key
// combos are configured but unavailable; they are logged and skipped.
type Executor struct {
	injector KeyInjector
}

func NewExecutor(injector KeyInjector) *Executor {
	return &Executor{injector: injector}
}

// Execute fires the action without waiting for it to finish. Failures
// are logged and never propagate; one misbehaving action must not stop
// the capture loop.
func (e *Executor) Execute(a binding.Action) {
	switch a.Kind {
	case binding.ActionCommand:
		if err := RunCommand(a.Argv); err != nil {
			slog.Error("command failed to start", "argv", a.Argv, "err", err)
		}
	case binding.ActionKeyCombo:
		if e.injector == nil {
			slog.Warn("key injection unavailable, skipping", "keys", a.Keys)
			return
		}
		if err := e.injector.Inject(a.Keys); err != nil {
			slog.Error("key injection failed", "keys", a.Keys, "err", err)
		}
	default:
		slog.Warn("unknown action kind", "kind", int(a.Kind))
	}
}

// Close releases the injector, if any.
func (e *Executor) Close() error {
	if e.injector != nil {
		return e.injector.Close()
	}
	return nil
}
