package capture

import (
	"testing"
	"time"

	"github.com/jezek/xgb/xproto"

	"github.com/depeter/mousebind/internal/binding"
)

func TestButtonNumbersUsesBoundAliases(t *testing.T) {
	table, err := binding.NewTable([]binding.Binding{
		{Button: binding.BtnBack, Action: binding.Command("true")},
		{Button: binding.BtnForward, Action: binding.Command("true")},
		{Button: binding.WheelTiltLeft, Action: binding.Command("true")},
	})
	if err != nil {
		t.Fatal(err)
	}

	m := buttonNumbers(table)
	if m[8] != binding.BtnBack {
		t.Errorf("number 8 = %s, want BTN_BACK", m[8])
	}
	if m[9] != binding.BtnForward {
		t.Errorf("number 9 = %s, want BTN_FORWARD", m[9])
	}
	if m[6] != binding.WheelTiltLeft {
		t.Errorf("number 6 = %s, want WHEEL_TILT_LEFT", m[6])
	}
	if _, ok := m[7]; ok {
		t.Error("number 7 must be unbound")
	}
}

func TestButtonNumbersSkipsTaskButton(t *testing.T) {
	table, err := binding.NewTable([]binding.Binding{
		{Button: binding.BtnTask, Action: binding.Command("true")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(buttonNumbers(table)) != 0 {
		t.Error("BTN_TASK has no x11 number and must not appear")
	}
}

// coreEvent builds one wire-format core event for the decoder tests.
func coreEvent(code, detail byte) []byte {
	ev := make([]byte, coreEventSize)
	ev[0] = code
	ev[1] = detail
	return ev
}

func TestDecodeInterceptedPressRelease(t *testing.T) {
	buttons := map[byte]binding.Button{8: binding.BtnBack}
	data := append(
		coreEvent(xproto.ButtonPress, 8),
		coreEvent(xproto.ButtonRelease, 8)...,
	)

	evs := decodeIntercepted(data, buttons, time.Now())
	if len(evs) != 2 {
		t.Fatalf("decoded %d events, want 2", len(evs))
	}
	if evs[0].Button != binding.BtnBack || !evs[0].Pressed {
		t.Errorf("first event = %+v, want BTN_BACK press", evs[0])
	}
	if evs[1].Button != binding.BtnBack || evs[1].Pressed {
		t.Errorf("second event = %+v, want BTN_BACK release", evs[1])
	}
}

func TestDecodeInterceptedFallsBackToCanonical(t *testing.T) {
	evs := decodeIntercepted(coreEvent(xproto.ButtonPress, 9), nil, time.Now())
	if len(evs) != 1 || evs[0].Button != binding.BtnExtra {
		t.Fatalf("decoded %+v, want canonical BTN_EXTRA for number 9", evs)
	}
}

func TestDecodeInterceptedMasksSendEventBit(t *testing.T) {
	evs := decodeIntercepted(coreEvent(xproto.ButtonPress|0x80, 8), nil, time.Now())
	if len(evs) != 1 || evs[0].Button != binding.BtnSide || !evs[0].Pressed {
		t.Fatalf("decoded %+v, want BTN_SIDE press", evs)
	}
}

func TestDecodeInterceptedSkipsForeignEvents(t *testing.T) {
	data := append(
		coreEvent(xproto.MotionNotify, 0),
		coreEvent(xproto.KeyPress, 38)...,
	)
	if evs := decodeIntercepted(data, nil, time.Now()); len(evs) != 0 {
		t.Errorf("decoded %+v from non-button events, want none", evs)
	}
}

func TestDecodeInterceptedIgnoresMeaninglessNumbers(t *testing.T) {
	// Number 10 has no button meaning; a truncated trailing record must
	// not decode either.
	data := append(coreEvent(xproto.ButtonPress, 10), 0x04, 0x08)
	if evs := decodeIntercepted(data, nil, time.Now()); len(evs) != 0 {
		t.Errorf("decoded %+v, want none", evs)
	}
}
