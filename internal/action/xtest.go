package action

import (
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
)

// XTestInjector synthesizes key events through the XTEST extension on
// its own X connection, in the same privilege domain as the X11 capture
// backend.
type XTestInjector struct {
	conn     *xgb.Conn
	root     xproto.Window
	keycodes map[xproto.Keysym]xproto.Keycode
}

func NewXTestInjector() (*XTestInjector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("xtest extension: %w", err)
	}
	if _, err := xtest.GetVersion(conn, 2, 2).Reply(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("xtest version: %w", err)
	}

	keycodes, err := keyboardMapping(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("keyboard mapping: %w", err)
	}

	return &XTestInjector{
		conn:     conn,
		root:     xproto.Setup(conn).DefaultScreen(conn).Root,
		keycodes: keycodes,
	}, nil
}

// keyboardMapping maps each keysym to the first keycode that produces
// it on the current layout.
func keyboardMapping(conn *xgb.Conn) (map[xproto.Keysym]xproto.Keycode, error) {
	setup := xproto.Setup(conn)
	min, max := setup.MinKeycode, setup.MaxKeycode
	count := byte(max - min + 1)

	reply, err := xproto.GetKeyboardMapping(conn, min, count).Reply()
	if err != nil {
		return nil, err
	}

	m := make(map[xproto.Keysym]xproto.Keycode)
	per := int(reply.KeysymsPerKeycode)
	if per == 0 {
		return m, nil
	}
	for i := 0; i+per <= len(reply.Keysyms); i += per {
		code := min + xproto.Keycode(i/per)
		for _, sym := range reply.Keysyms[i : i+per] {
			if sym == 0 {
				continue
			}
			if _, ok := m[sym]; !ok {
				m[sym] = code
			}
		}
	}
	return m, nil
}

// Inject presses the combo's keycodes in order and releases them in
// reverse. KEY_BACK and KEY_FORWARD prefer their XF86 keysyms and fall
// back to Alt+Left / Alt+Right on layouts that lack them.
func (x *XTestInjector) Inject(keys []string) error {
	if len(keys) == 1 {
		switch keys[0] {
		case "KEY_BACK":
			return x.comboWithFallback(xsBack, []xproto.Keysym{xsAltL, xsLeft})
		case "KEY_FORWARD":
			return x.comboWithFallback(xsForward, []xproto.Keysym{xsAltL, xsRight})
		}
	}

	var codes []xproto.Keycode
	for _, key := range keys {
		sym, ok := keysymForKey(key)
		if !ok {
			slog.Warn("key has no x11 keysym mapping", "key", key)
			continue
		}
		code, ok := x.keycodes[sym]
		if !ok {
			slog.Warn("no keycode for keysym", "key", key, "keysym", fmt.Sprintf("%#x", uint32(sym)))
			continue
		}
		codes = append(codes, code)
	}
	return x.sendCombo(codes)
}

func (x *XTestInjector) comboWithFallback(preferred xproto.Keysym, fallback []xproto.Keysym) error {
	if code, ok := x.keycodes[preferred]; ok {
		return x.sendCombo([]xproto.Keycode{code})
	}
	codes := make([]xproto.Keycode, 0, len(fallback))
	for _, sym := range fallback {
		code, ok := x.keycodes[sym]
		if !ok {
			return fmt.Errorf("no keycode for fallback keysym %#x", uint32(sym))
		}
		codes = append(codes, code)
	}
	return x.sendCombo(codes)
}

func (x *XTestInjector) sendCombo(codes []xproto.Keycode) error {
	if len(codes) == 0 {
		return nil
	}
	for _, code := range codes {
		err := xtest.FakeInputChecked(x.conn, xproto.KeyPress, byte(code), 0, x.root, 0, 0, 0).Check()
		if err != nil {
			return fmt.Errorf("fake key press: %w", err)
		}
	}
	for i := len(codes) - 1; i >= 0; i-- {
		err := xtest.FakeInputChecked(x.conn, xproto.KeyRelease, byte(codes[i]), 0, x.root, 0, 0, 0).Check()
		if err != nil {
			return fmt.Errorf("fake key release: %w", err)
		}
	}
	return nil
}

func (x *XTestInjector) Close() error {
	x.conn.Close()
	return nil
}
