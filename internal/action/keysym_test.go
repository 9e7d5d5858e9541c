package action

import "testing"

func TestKeysymForKey(t *testing.T) {
	cases := map[string]uint32{
		"KEY_VOLUMEUP":   0x1008ff13,
		"KEY_VOLUMEDOWN": 0x1008ff11,
		"KEY_MUTE":       0x1008ff12,
		"KEY_BACK":       0x1008ff26,
		"KEY_FORWARD":    0x1008ff27,
		"KEY_LEFTALT":    0xffe9,
		"KEY_LEFT":       0xff51,
		"KEY_RIGHT":      0xff53,
		"KEY_A":          0x61,
		"KEY_Z":          0x7a,
		"KEY_0":          0x30,
		"KEY_9":          0x39,
	}
	for name, want := range cases {
		sym, ok := keysymForKey(name)
		if !ok || uint32(sym) != want {
			t.Errorf("%s: got %#x, %v; want %#x", name, uint32(sym), ok, want)
		}
	}
}

func TestKeysymForKeyUnknown(t *testing.T) {
	for _, name := range []string{"KEY_KPDOT", "KEY_", "BTN_SIDE", "A"} {
		if sym, ok := keysymForKey(name); ok {
			t.Errorf("%s: expected no keysym, got %#x", name, uint32(sym))
		}
	}
}
