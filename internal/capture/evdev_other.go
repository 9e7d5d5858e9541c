//go:build !linux

package capture

import (
	"errors"

	"github.com/depeter/mousebind/internal/binding"
)

// The evdev backend reads kernel input character devices and only exists
// on Linux.

type EvdevBackend struct{}

var errNotLinux = errors.New("evdev capture requires linux")

func OpenEvdevDevice(path string) (*EvdevBackend, error) {
	return nil, &DeviceError{Source: path, Err: errNotLinux}
}

func OpenEvdev(table binding.Table) (*EvdevBackend, error) {
	return nil, &DeviceError{Source: "/dev/input", Err: errNotLinux}
}

func (b *EvdevBackend) Events() <-chan Event { return nil }

func (b *EvdevBackend) Close() error { return nil }

type DeviceInfo struct {
	Path string
	Name string
}

func ListDevices() ([]DeviceInfo, error) {
	return nil, errNotLinux
}
