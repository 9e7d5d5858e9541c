package capture

import "github.com/depeter/mousebind/internal/binding"

// Debouncer suppresses duplicate Pressed transitions caused by hardware
// bounce. A press for a button that is already down without an
// intervening release is dropped; everything else passes. There is no
// time window, only edge consistency, and the logic is identical for
// every backend.
type Debouncer struct {
	down map[binding.Button]bool
}

func NewDebouncer() *Debouncer {
	return &Debouncer{down: make(map[binding.Button]bool)}
}

// Pass reports whether ev should continue down the pipeline and updates
// the per-button transition state.
func (d *Debouncer) Pass(ev Event) bool {
	if ev.Pressed {
		if d.down[ev.Button] {
			return false
		}
		d.down[ev.Button] = true
		return true
	}
	delete(d.down, ev.Button)
	return true
}
