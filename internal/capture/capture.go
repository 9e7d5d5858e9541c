// Package capture turns backend-specific input events into one
// normalized pressed/released stream for the dispatch loop.
package capture

import (
	"fmt"
	"time"

	"github.com/depeter/mousebind/internal/binding"
)

// Event is the normalized form every backend emits. Raw device records
// never leave their backend.
type Event struct {
	Button  binding.Button
	Pressed bool
	Time    time.Time
}

// Backend is one capture source variant. Events is closed when every
// underlying source is exhausted; Close releases devices, subscriptions
// and grabs and is safe to call on any exit path, more than once.
type Backend interface {
	Events() <-chan Event
	Close() error
}

// DeviceError wraps a failure to open or subscribe to a capture source.
// At startup it is fatal; mid-run it only ends the affected source.
type DeviceError struct {
	Source string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
