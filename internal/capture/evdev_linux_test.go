//go:build linux

package capture

import (
	"testing"
	"time"

	"github.com/depeter/mousebind/internal/binding"
)

func TestTranslateEvdevKeyEvents(t *testing.T) {
	now := time.Now()

	evs := translateEvdev(evKey, 0x113, 1, now)
	if len(evs) != 1 || evs[0].Button != binding.BtnSide || !evs[0].Pressed {
		t.Fatalf("BTN_SIDE press: got %v", evs)
	}

	evs = translateEvdev(evKey, 0x113, 0, now)
	if len(evs) != 1 || evs[0].Pressed {
		t.Fatalf("BTN_SIDE release: got %v", evs)
	}
}

func TestTranslateEvdevDropsAutorepeat(t *testing.T) {
	if evs := translateEvdev(evKey, 0x113, 2, time.Now()); evs != nil {
		t.Fatalf("autorepeat: got %v, want nil", evs)
	}
}

func TestTranslateEvdevDropsUnrecognizedCodes(t *testing.T) {
	for _, code := range []uint16{0, 1, 30, 158, 0x10f, 0x118} {
		if evs := translateEvdev(evKey, code, 1, time.Now()); evs != nil {
			t.Errorf("code %#x: got %v, want nil", code, evs)
		}
	}
	// Vertical wheel is not tilt.
	if evs := translateEvdev(evRel, 0x08, 1, time.Now()); evs != nil {
		t.Errorf("REL_WHEEL: got %v, want nil", evs)
	}
}

func TestTranslateEvdevWheelTilt(t *testing.T) {
	now := time.Now()

	evs := translateEvdev(evRel, relHWheel, -1, now)
	if len(evs) != 2 {
		t.Fatalf("tilt left: got %d events, want press+release pair", len(evs))
	}
	if evs[0].Button != binding.WheelTiltLeft || !evs[0].Pressed {
		t.Errorf("tilt left press: got %v", evs[0])
	}
	if evs[1].Button != binding.WheelTiltLeft || evs[1].Pressed {
		t.Errorf("tilt left release: got %v", evs[1])
	}

	evs = translateEvdev(evRel, relHWheelHiRes, 120, now)
	if len(evs) != 2 || evs[0].Button != binding.WheelTiltRight {
		t.Fatalf("hi-res tilt right: got %v", evs)
	}

	if evs := translateEvdev(evRel, relHWheel, 0, now); evs != nil {
		t.Errorf("zero tilt: got %v, want nil", evs)
	}
}

func TestTranslateEvdevIsDeterministic(t *testing.T) {
	now := time.Now()
	for code := uint16(0x110); code <= 0x117; code++ {
		a := translateEvdev(evKey, code, 1, now)
		b := translateEvdev(evKey, code, 1, now)
		if len(a) != 1 || len(b) != 1 || a[0].Button != b[0].Button {
			t.Fatalf("code %#x: conversion not stable: %v vs %v", code, a, b)
		}
	}
}

func TestBitSet(t *testing.T) {
	mask := []byte{0x00, 0x81}
	if bitSet(mask, 0) || !bitSet(mask, 8) || !bitSet(mask, 15) {
		t.Error("bitSet misreads mask bytes")
	}
	if bitSet(mask, 16) {
		t.Error("bitSet must be false past the mask length")
	}
}
