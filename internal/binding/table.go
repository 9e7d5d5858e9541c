package binding

import (
	"fmt"
	"sort"
)

// Binding associates one button with one action.
type Binding struct {
	Button Button
	Action Action
}

// Table maps buttons to their bound actions. It is built once at startup
// and read-only afterwards, so the capture loop looks it up without
// locking.
type Table map[Button]Action

// NewTable validates the bindings into a table. Two bindings on the same
// button are rejected outright rather than resolved last-wins, so a
// misconfigured file fails loudly before capture starts.
func NewTable(bindings []Binding) (Table, error) {
	t := make(Table, len(bindings))
	for _, b := range bindings {
		if _, dup := t[b.Button]; dup {
			return nil, fmt.Errorf("duplicate binding for %s", b.Button)
		}
		t[b.Button] = b.Action
	}
	return t, nil
}

// Lookup returns the action bound to b, if any.
func (t Table) Lookup(b Button) (Action, bool) {
	a, ok := t[b]
	return a, ok
}

// Buttons returns the bound buttons in a stable order.
func (t Table) Buttons() []Button {
	out := make([]Button, 0, len(t))
	for b := range t {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EvdevCodes returns the kernel key codes of the bound buttons, for
// device capability matching.
func (t Table) EvdevCodes() []uint16 {
	var out []uint16
	for _, b := range t.Buttons() {
		if code, ok := b.EvdevCode(); ok {
			out = append(out, code)
		}
	}
	return out
}

// HasWheelTilt reports whether any binding targets a wheel-tilt
// direction.
func (t Table) HasWheelTilt() bool {
	_, l := t[WheelTiltLeft]
	_, r := t[WheelTiltRight]
	return l || r
}

// KeyComboKeys returns the distinct key names referenced by key-combo
// actions, in a stable order. The uinput injector registers exactly
// these.
func (t Table) KeyComboKeys() []string {
	seen := make(map[string]struct{})
	for _, b := range t.Buttons() {
		a := t[b]
		if a.Kind != ActionKeyCombo {
			continue
		}
		for _, k := range a.Keys {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GrabSet is the set of buttons the native backend actively intercepts
// so the session's default handling does not also fire. It is owned by
// the backend instance that established the grabs.
type GrabSet map[Button]struct{}

// NewGrabSet builds a grab set from buttons.
func NewGrabSet(buttons ...Button) GrabSet {
	s := make(GrabSet, len(buttons))
	for _, b := range buttons {
		s[b] = struct{}{}
	}
	return s
}

// Contains reports whether b is in the set.
func (s GrabSet) Contains(b Button) bool {
	_, ok := s[b]
	return ok
}

// Buttons returns the set members in a stable order.
func (s GrabSet) Buttons() []Button {
	out := make([]Button, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
