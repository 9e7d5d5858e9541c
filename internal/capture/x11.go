package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/record"
	"github.com/jezek/xgb/xproto"

	"github.com/depeter/mousebind/internal/binding"
)

// RECORD intercept categories from the extension protocol. StartOfData
// opens every stream; EndOfData follows DisableContext and terminates it.
const (
	recFromServer  = 0
	recStartOfData = 4
	recEndOfData   = 5
)

// coreEventSize is the wire size of a core protocol event; intercepted
// device events arrive as a concatenation of these.
const coreEventSize = 32

// X11Backend receives session-wide button presses and releases through
// the RECORD extension, independent of window focus. It holds two
// connections: EnableContext monopolizes the one it runs on, so the
// recorded stream gets its own and the control connection keeps serving
// grabs and teardown. When a grab set is given the bound buttons are
// additionally grabbed on the root window so the session's default
// handling does not fire; the grabs are released in Close on every exit
// path.
type X11Backend struct {
	ctrl      *xgb.Conn
	data      *xgb.Conn
	rctx      record.Context
	root      xproto.Window
	events    chan Event
	buttons   map[byte]binding.Button
	grabbed   []byte
	closing   atomic.Bool
	closeOnce sync.Once
}

// OpenX11 connects to the X server, registers a recording context for
// core button events from all clients, and establishes grabs for the
// grab set. Any failure here is fatal to startup.
func OpenX11(table binding.Table, grabs binding.GrabSet) (*X11Backend, error) {
	ctrl, err := xgb.NewConn()
	if err != nil {
		return nil, &DeviceError{Source: "x11", Err: err}
	}
	if err := record.Init(ctrl); err != nil {
		ctrl.Close()
		return nil, &DeviceError{Source: "x11", Err: fmt.Errorf("record extension: %w", err)}
	}

	rctx, err := record.NewContextId(ctrl)
	if err != nil {
		ctrl.Close()
		return nil, &DeviceError{Source: "x11", Err: err}
	}
	err = record.CreateContextChecked(ctrl, rctx, 0, 1, 1,
		[]record.ClientSpec{record.ClientSpec(record.CsAllClients)},
		[]record.Range{{
			DeviceEvents: record.Range8{First: xproto.ButtonPress, Last: xproto.ButtonRelease},
		}}).Check()
	if err != nil {
		ctrl.Close()
		return nil, &DeviceError{Source: "x11", Err: fmt.Errorf("create recording context: %w", err)}
	}

	b := &X11Backend{
		ctrl:    ctrl,
		rctx:    rctx,
		root:    xproto.Setup(ctrl).DefaultScreen(ctrl).Root,
		events:  make(chan Event, 16),
		buttons: buttonNumbers(table),
	}

	for _, btn := range grabs.Buttons() {
		num, ok := btn.X11Button()
		if !ok {
			slog.Warn("button has no x11 number, cannot grab", "button", btn)
			continue
		}
		err := xproto.GrabButtonChecked(ctrl, false, b.root,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone,
			num, xproto.ModMaskAny).Check()
		if err != nil {
			b.Close()
			return nil, &DeviceError{Source: "x11", Err: fmt.Errorf("grab button %s: %w", btn, err)}
		}
		slog.Info("grabbed button", "button", btn, "number", num)
		b.grabbed = append(b.grabbed, num)
	}

	// The recorded stream arrives as EnableContext replies, which block
	// their connection for anything else, so it runs on its own.
	data, err := xgb.NewConn()
	if err != nil {
		b.Close()
		return nil, &DeviceError{Source: "x11", Err: err}
	}
	if err := record.Init(data); err != nil {
		data.Close()
		b.Close()
		return nil, &DeviceError{Source: "x11", Err: fmt.Errorf("record extension: %w", err)}
	}
	b.data = data

	go b.loop(record.EnableContext(data, rctx))
	go b.discardDelivered()
	return b, nil
}

// buttonNumbers maps X11 button numbers to bound buttons. Numbers 8 and
// 9 are shared between side/back and extra/forward, so a bound alias
// takes precedence over the canonical name.
func buttonNumbers(table binding.Table) map[byte]binding.Button {
	m := make(map[byte]binding.Button)
	for _, btn := range table.Buttons() {
		num, ok := btn.X11Button()
		if !ok {
			continue
		}
		if prev, dup := m[num]; dup {
			slog.Warn("buttons share one x11 number, first binding wins",
				"kept", prev, "ignored", btn, "number", num)
			continue
		}
		m[num] = btn
	}
	return m
}

func (b *X11Backend) Events() <-chan Event {
	return b.events
}

// Close stops the recording context, releases the grabs, and closes both
// connections. Disabling the context ends the reply stream with
// EndOfData, which lets the reader drain out and close the channel.
func (b *X11Backend) Close() error {
	b.closeOnce.Do(func() {
		b.closing.Store(true)
		record.DisableContext(b.ctrl, b.rctx)
		record.FreeContext(b.ctrl, b.rctx)
		for _, num := range b.grabbed {
			xproto.UngrabButton(b.ctrl, num, b.root, xproto.ModMaskAny)
		}
		b.ctrl.Sync()
		b.ctrl.Close()
		if b.data != nil {
			b.data.Close()
		}
	})
	return nil
}

// loop consumes the EnableContext reply stream until EndOfData or a
// connection error.
func (b *X11Backend) loop(cookie record.EnableContextCookie) {
	defer close(b.events)
	for {
		reply, err := cookie.Reply()
		if err != nil {
			if !b.closing.Load() {
				slog.Warn("recorded event stream ended", "err", err)
			}
			return
		}
		if reply == nil || reply.Category == recEndOfData {
			return
		}
		if reply.Category != recFromServer {
			continue // StartOfData, client bookkeeping
		}
		now := time.Now()
		for _, ev := range decodeIntercepted(reply.Data, b.buttons, now) {
			b.events <- ev
		}
	}
}

// decodeIntercepted splits a FromServer intercept blob into core events
// and translates the button ones. Unbound numbers fall back to the
// canonical mapping so the debounce stage still sees consistent
// transitions; numbers with no button meaning yield nothing.
func decodeIntercepted(data []byte, buttons map[byte]binding.Button, now time.Time) []Event {
	var out []Event
	for ; len(data) >= coreEventSize; data = data[coreEventSize:] {
		code := data[0] &^ 0x80 // high bit marks SendEvent forgeries
		if code != xproto.ButtonPress && code != xproto.ButtonRelease {
			continue
		}
		btn, ok := buttons[data[1]]
		if !ok {
			if btn, ok = binding.ButtonFromX11(uint32(data[1])); !ok {
				continue
			}
		}
		out = append(out, Event{
			Button:  btn,
			Pressed: code == xproto.ButtonPress,
			Time:    now,
		})
	}
	return out
}

// discardDelivered drains the control connection's event queue. Grabbed
// buttons are delivered here as core events; the recorded stream already
// carries them, but an unread queue would eventually stall the
// connection and with it Close.
func (b *X11Backend) discardDelivered() {
	for {
		ev, err := b.ctrl.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
	}
}
