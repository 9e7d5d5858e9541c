// Package binding defines the logical button space, the action variants
// bound to buttons, and the validated table the dispatch loop runs against.
package binding

import "fmt"

// Button identifies a physical mouse control independent of the capture
// backend that observed it.
type Button uint8

const (
	BtnLeft Button = iota
	BtnRight
	BtnMiddle
	BtnSide
	BtnExtra
	BtnForward
	BtnBack
	BtnTask
	WheelTiltLeft
	WheelTiltRight
)

// buttonNames are the spellings used in the config file.
var buttonNames = map[Button]string{
	BtnLeft:        "BTN_LEFT",
	BtnRight:       "BTN_RIGHT",
	BtnMiddle:      "BTN_MIDDLE",
	BtnSide:        "BTN_SIDE",
	BtnExtra:       "BTN_EXTRA",
	BtnForward:     "BTN_FORWARD",
	BtnBack:        "BTN_BACK",
	BtnTask:        "BTN_TASK",
	WheelTiltLeft:  "WHEEL_TILT_LEFT",
	WheelTiltRight: "WHEEL_TILT_RIGHT",
}

var buttonsByName = func() map[string]Button {
	m := make(map[string]Button, len(buttonNames))
	for b, name := range buttonNames {
		m[name] = b
	}
	return m
}()

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// ParseButton resolves a config button name like "BTN_SIDE".
func ParseButton(name string) (Button, bool) {
	b, ok := buttonsByName[name]
	return b, ok
}

// evdevCodeBase is BTN_MOUSE from input-event-codes.h; the eight mouse
// buttons occupy the contiguous range 0x110..0x117.
const (
	evdevCodeBase = 0x110
	evdevCodeLast = 0x117
)

// EvdevCode returns the Linux input key code for the button. Wheel tilt
// has no key code; it arrives as a relative axis.
func (b Button) EvdevCode() (uint16, bool) {
	if b > BtnTask {
		return 0, false
	}
	return evdevCodeBase + uint16(b), true
}

// ButtonFromEvdevCode maps a kernel key code back to a button. Codes
// outside the mouse button range are unrecognized, not an error.
func ButtonFromEvdevCode(code uint16) (Button, bool) {
	if code < evdevCodeBase || code > evdevCodeLast {
		return 0, false
	}
	return Button(code - evdevCodeBase), true
}

// X11Button returns the core-protocol button number the X server reports
// for this button. Side/back and extra/forward share numbers 8 and 9;
// BTN_TASK has no X11 equivalent.
func (b Button) X11Button() (byte, bool) {
	switch b {
	case BtnLeft:
		return 1, true
	case BtnMiddle:
		return 2, true
	case BtnRight:
		return 3, true
	case BtnSide, BtnBack:
		return 8, true
	case BtnExtra, BtnForward:
		return 9, true
	case WheelTiltLeft:
		return 6, true
	case WheelTiltRight:
		return 7, true
	}
	return 0, false
}

// ButtonFromX11 maps an X11 button number to its canonical button. The
// shared numbers 8 and 9 resolve to BTN_SIDE and BTN_EXTRA.
func ButtonFromX11(detail uint32) (Button, bool) {
	switch detail {
	case 1:
		return BtnLeft, true
	case 2:
		return BtnMiddle, true
	case 3:
		return BtnRight, true
	case 6:
		return WheelTiltLeft, true
	case 7:
		return WheelTiltRight, true
	case 8:
		return BtnSide, true
	case 9:
		return BtnExtra, true
	}
	return 0, false
}
