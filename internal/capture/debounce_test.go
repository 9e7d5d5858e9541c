package capture

import (
	"testing"
	"time"

	"github.com/depeter/mousebind/internal/binding"
)

func ev(b binding.Button, pressed bool) Event {
	return Event{Button: b, Pressed: pressed, Time: time.Now()}
}

func TestDebouncerDropsBounceBurst(t *testing.T) {
	d := NewDebouncer()
	passed := 0
	for i := 0; i < 5; i++ {
		if d.Pass(ev(binding.BtnSide, true)) {
			passed++
		}
	}
	if passed != 1 {
		t.Fatalf("burst of 5 presses passed %d events, want 1", passed)
	}
}

func TestDebouncerReleaseResets(t *testing.T) {
	d := NewDebouncer()
	if !d.Pass(ev(binding.BtnSide, true)) {
		t.Fatal("first press must pass")
	}
	if !d.Pass(ev(binding.BtnSide, false)) {
		t.Fatal("release must pass")
	}
	if !d.Pass(ev(binding.BtnSide, true)) {
		t.Fatal("press after release must pass")
	}
}

func TestDebouncerTracksButtonsIndependently(t *testing.T) {
	d := NewDebouncer()
	d.Pass(ev(binding.BtnSide, true))
	if !d.Pass(ev(binding.BtnExtra, true)) {
		t.Fatal("a held BTN_SIDE must not suppress BTN_EXTRA")
	}
	if d.Pass(ev(binding.BtnSide, true)) {
		t.Fatal("held BTN_SIDE must stay suppressed")
	}
}

func TestDebouncerPassesReleaseWithoutPress(t *testing.T) {
	d := NewDebouncer()
	if !d.Pass(ev(binding.BtnBack, false)) {
		t.Fatal("stray release must pass through")
	}
}
