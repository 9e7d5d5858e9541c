//go:build linux

package action

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"github.com/depeter/mousebind/internal/binding"
)

// uinput ioctl requests and event constants from linux/uinput.h and
// input-event-codes.h.
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	uinputMaxNameSize = 80
	absSize           = 64
	busUsb            = 0x03

	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0
)

type inputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev.
type userDev struct {
	Name         [uinputMaxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	AbsMax       [absSize]int32
	AbsMin       [absSize]int32
	AbsFuzz      [absSize]int32
	AbsFlat      [absSize]int32
}

// inputEvent mirrors struct input_event on 64-bit. A zero timestamp lets
// the kernel fill in the time.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// UinputInjector is a virtual keyboard created through /dev/uinput. Its
// capability mask registers exactly the key codes that appear in the
// binding table's key combos.
type UinputInjector struct {
	f *os.File
}

// NewUinputInjector creates the virtual device. keys are KEY_* names
// already validated by the config loader. Failure here is not fatal to
// the daemon; the caller degrades to injection-unavailable.
func NewUinputInjector(keys []string) (*UinputInjector, error) {
	codes := make([]uint16, 0, len(keys))
	for _, name := range keys {
		code, ok := binding.KeyCode(name)
		if !ok {
			continue
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil, errors.New("no injectable keys configured")
	}

	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}

	fd := int(f.Fd())
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		f.Close()
		return nil, fmt.Errorf("UI_SET_EVBIT: %w", err)
	}
	for _, code := range codes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			f.Close()
			return nil, fmt.Errorf("UI_SET_KEYBIT %d: %w", code, err)
		}
	}

	var setup userDev
	copy(setup.Name[:], "mousebind virtual keyboard")
	setup.ID = inputID{BusType: busUsb, Vendor: 0x1, Product: 0x1, Version: 1}
	if err := binary.Write(f, binary.LittleEndian, &setup); err != nil {
		f.Close()
		return nil, fmt.Errorf("write uinput setup: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("UI_DEV_CREATE: %w", err)
	}

	slog.Info("created uinput virtual keyboard", "keys", len(codes))
	return &UinputInjector{f: f}, nil
}

// Inject presses the keys in order and releases them in reverse, with a
// SYN_REPORT after each phase.
func (u *UinputInjector) Inject(keys []string) error {
	codes := make([]uint16, 0, len(keys))
	for _, name := range keys {
		code, ok := binding.KeyCode(name)
		if !ok {
			slog.Warn("unknown key name", "key", name)
			continue
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return errors.New("no recognized keys in combo")
	}

	for _, code := range codes {
		if err := u.emit(evKey, code, 1); err != nil {
			return fmt.Errorf("key press: %w", err)
		}
	}
	if err := u.emit(evSyn, synReport, 0); err != nil {
		return err
	}
	for i := len(codes) - 1; i >= 0; i-- {
		if err := u.emit(evKey, codes[i], 0); err != nil {
			return fmt.Errorf("key release: %w", err)
		}
	}
	return u.emit(evSyn, synReport, 0)
}

func (u *UinputInjector) emit(typ, code uint16, value int32) error {
	return binary.Write(u.f, binary.LittleEndian, &inputEvent{Type: typ, Code: code, Value: value})
}

// Close destroys the virtual device.
func (u *UinputInjector) Close() error {
	if err := unix.IoctlSetInt(int(u.f.Fd()), uiDevDestroy, 0); err != nil {
		u.f.Close()
		return fmt.Errorf("UI_DEV_DESTROY: %w", err)
	}
	return u.f.Close()
}
