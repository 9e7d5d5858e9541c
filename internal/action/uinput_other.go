//go:build !linux

package action

import "errors"

// Uinput key injection requires the Linux uinput subsystem.

type UinputInjector struct{}

func NewUinputInjector(keys []string) (*UinputInjector, error) {
	return nil, errors.New("uinput injection requires linux")
}

func (u *UinputInjector) Inject(keys []string) error {
	return errors.New("uinput injection requires linux")
}

func (u *UinputInjector) Close() error { return nil }
