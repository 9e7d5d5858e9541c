// Package app wires capture, debouncing, and action execution into the
// daemon run loop.
package app

import (
	"log/slog"

	"github.com/depeter/mousebind/internal/binding"
	"github.com/depeter/mousebind/internal/capture"
)

// Outcome reports what Dispatch did with an event.
type Outcome int

const (
	// Dispatched means a binding matched and its action was invoked.
	Dispatched Outcome = iota
	// NoBinding means the pressed button has no configured action.
	NoBinding
	// Released means the event was a release, consumed for debounce
	// state only.
	Released
)

// ActionRunner is satisfied by action.Executor.
type ActionRunner interface {
	Execute(binding.Action)
}

// Dispatcher resolves normalized events against the binding table. The
// table is read-only for the daemon's lifetime, so lookups need no
// locking.
type Dispatcher struct {
	table  binding.Table
	runner ActionRunner
}

func NewDispatcher(table binding.Table, runner ActionRunner) *Dispatcher {
	return &Dispatcher{table: table, runner: runner}
}

// Dispatch fires the bound action for a press. Releases and unbound
// buttons are no-ops, never errors.
func (d *Dispatcher) Dispatch(ev capture.Event) Outcome {
	if !ev.Pressed {
		return Released
	}
	act, ok := d.table.Lookup(ev.Button)
	if !ok {
		return NoBinding
	}
	slog.Debug("dispatching", "button", ev.Button, "action", act)
	d.runner.Execute(act)
	return Dispatched
}
