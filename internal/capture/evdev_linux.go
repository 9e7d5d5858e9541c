//go:build linux

package capture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/depeter/mousebind/internal/binding"
)

// Linux input event types and the horizontal-wheel axes.
const (
	evKey = 0x01
	evRel = 0x02

	relHWheel      = 0x06
	relHWheelHiRes = 0x0c
)

// inputEventSize is the size of a kernel input_event struct (timeval +
// u16 type + u16 code + s32 value).
var inputEventSize = int(unsafe.Sizeof(struct {
	Sec, Usec int64
	Type      uint16
	Code      uint16
	Value     int32
}{}))

// EvdevBackend reads raw event streams from one or more kernel input
// character devices. Each device gets its own reader goroutine; events
// merge into one channel in delivery order, with no cross-device
// ordering guarantee.
type EvdevBackend struct {
	events    chan Event
	files     []*os.File
	wg        sync.WaitGroup
	closing   atomic.Bool
	closeOnce sync.Once
}

// OpenEvdevDevice opens a single explicit device node, skipping
// capability filtering.
func OpenEvdevDevice(path string) (*EvdevBackend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DeviceError{Source: path, Err: err}
	}
	slog.Info("opened input device", "path", path, "name", deviceName(f))
	return newEvdevBackend([]*os.File{f}), nil
}

// OpenEvdev scans /dev/input/event* and opens every device whose
// capability mask can produce one of the table's bound buttons: a
// matching key code, or a horizontal wheel axis when tilt is bound.
func OpenEvdev(table binding.Table) (*EvdevBackend, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, &DeviceError{Source: "/dev/input", Err: err}
	}
	sort.Strings(paths)

	var files []*os.File
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			slog.Debug("skipping unreadable device", "path", path, "err", err)
			continue
		}
		if !deviceMatches(f, table) {
			f.Close()
			continue
		}
		slog.Info("listening on device", "path", path, "name", deviceName(f))
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, &DeviceError{
			Source: "/dev/input",
			Err:    errors.New("no readable devices match the configured bindings"),
		}
	}
	return newEvdevBackend(files), nil
}

func newEvdevBackend(files []*os.File) *EvdevBackend {
	b := &EvdevBackend{
		events: make(chan Event, 16),
		files:  files,
	}
	for _, f := range files {
		b.wg.Add(1)
		go b.readLoop(f)
	}
	go func() {
		b.wg.Wait()
		close(b.events)
	}()
	return b
}

func (b *EvdevBackend) Events() <-chan Event {
	return b.events
}

// Close interrupts every reader by closing its device file. The events
// channel closes once the last reader exits.
func (b *EvdevBackend) Close() error {
	b.closeOnce.Do(func() {
		b.closing.Store(true)
		for _, f := range b.files {
			f.Close()
		}
	})
	return nil
}

func (b *EvdevBackend) readLoop(f *os.File) {
	defer b.wg.Done()
	buf := make([]byte, inputEventSize)
	for {
		if _, err := io.ReadFull(f, buf); err != nil {
			if !b.closing.Load() {
				slog.Warn("input device stream ended", "path", f.Name(), "err", err)
			}
			return
		}
		typ := binary.LittleEndian.Uint16(buf[16:18])
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))
		for _, ev := range translateEvdev(typ, code, value, time.Now()) {
			b.events <- ev
		}
	}
}

// translateEvdev converts one raw record into zero or more normalized
// events. Unrecognized codes yield nothing. Wheel tilt is a stateless
// relative axis, so each tick becomes a press immediately followed by a
// release to keep debounce state consistent.
func translateEvdev(typ, code uint16, value int32, now time.Time) []Event {
	switch typ {
	case evKey:
		if value == 2 {
			return nil // autorepeat
		}
		btn, ok := binding.ButtonFromEvdevCode(code)
		if !ok {
			return nil
		}
		return []Event{{Button: btn, Pressed: value != 0, Time: now}}
	case evRel:
		if code != relHWheel && code != relHWheelHiRes {
			return nil
		}
		var btn binding.Button
		switch {
		case value < 0:
			btn = binding.WheelTiltLeft
		case value > 0:
			btn = binding.WheelTiltRight
		default:
			return nil
		}
		return []Event{
			{Button: btn, Pressed: true, Time: now},
			{Button: btn, Pressed: false, Time: now},
		}
	}
	return nil
}

// keyMax is the highest key code defined in input-event-codes.h.
const keyMax = 0x2ff

func deviceMatches(f *os.File, table binding.Table) bool {
	keys := make([]byte, keyMax/8+1)
	if err := ioctl(f.Fd(), eviocgbit(evKey, len(keys)), keys); err == nil {
		for _, code := range table.EvdevCodes() {
			if bitSet(keys, code) {
				return true
			}
		}
	}
	if table.HasWheelTilt() {
		rels := make([]byte, 2)
		if err := ioctl(f.Fd(), eviocgbit(evRel, len(rels)), rels); err == nil {
			if bitSet(rels, relHWheel) || bitSet(rels, relHWheelHiRes) {
				return true
			}
		}
	}
	return false
}

// deviceName reads the kernel-reported device name, best effort.
func deviceName(f *os.File) string {
	buf := make([]byte, 256)
	if err := ioctl(f.Fd(), eviocgname(len(buf)), buf); err != nil {
		return "<unknown>"
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

func bitSet(mask []byte, n uint16) bool {
	i := int(n) / 8
	return i < len(mask) && mask[i]&(1<<(n%8)) != 0
}

// eviocgbit builds the EVIOCGBIT(ev, size) ioctl request: read
// direction, 'E' type, nr 0x20+ev.
func eviocgbit(ev uint16, size int) uint {
	return 2<<30 | uint(size)<<16 | 'E'<<8 | uint(0x20+ev)
}

// eviocgname builds the EVIOCGNAME(size) ioctl request.
func eviocgname(size int) uint {
	return 2<<30 | uint(size)<<16 | 'E'<<8 | 0x06
}

func ioctl(fd uintptr, req uint, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// DeviceInfo describes one /dev/input node for the list-devices
// subcommand.
type DeviceInfo struct {
	Path string
	Name string
}

// ListDevices enumerates /dev/input/event* nodes with their reported
// names. Unreadable nodes are listed with the error instead of a name.
func ListDevices() ([]DeviceInfo, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			out = append(out, DeviceInfo{Path: path, Name: "<unreadable: " + err.Error() + ">"})
			continue
		}
		out = append(out, DeviceInfo{Path: path, Name: deviceName(f)})
		f.Close()
	}
	return out, nil
}
