package action

import (
	"strings"

	"github.com/jezek/xgb/xproto"
)

// X11 keysym values from keysymdef.h and XF86keysym.h, for the key
// names the config accepts.
const (
	xsShiftL   = 0xffe1
	xsShiftR   = 0xffe2
	xsControlL = 0xffe3
	xsControlR = 0xffe4
	xsAltL     = 0xffe9
	xsAltR     = 0xffea
	xsSuperL   = 0xffeb
	xsSuperR   = 0xffec

	xsLeft  = 0xff51
	xsUp    = 0xff52
	xsRight = 0xff53
	xsDown  = 0xff54

	xsHome     = 0xff50
	xsEnd      = 0xff57
	xsPageUp   = 0xff55
	xsPageDown = 0xff56
	xsReturn   = 0xff0d
	xsTab      = 0xff09
	xsEscape   = 0xff1b
	xsSpace    = 0x0020

	xsAudioLowerVolume = 0x1008ff11
	xsAudioMute        = 0x1008ff12
	xsAudioRaiseVolume = 0x1008ff13
	xsAudioPlay        = 0x1008ff14
	xsAudioStop        = 0x1008ff15
	xsAudioPrev        = 0x1008ff16
	xsAudioNext        = 0x1008ff17
	xsHomePage         = 0x1008ff18
	xsSearch           = 0x1008ff1b
	xsBack             = 0x1008ff26
	xsForward          = 0x1008ff27
	xsRefresh          = 0x1008ff29
)

var keysyms = map[string]xproto.Keysym{
	"KEY_VOLUMEUP":     xsAudioRaiseVolume,
	"KEY_VOLUMEDOWN":   xsAudioLowerVolume,
	"KEY_MUTE":         xsAudioMute,
	"KEY_PLAYPAUSE":    xsAudioPlay,
	"KEY_STOPCD":       xsAudioStop,
	"KEY_PREVIOUSSONG": xsAudioPrev,
	"KEY_NEXTSONG":     xsAudioNext,
	"KEY_HOMEPAGE":     xsHomePage,
	"KEY_SEARCH":       xsSearch,
	"KEY_BACK":         xsBack,
	"KEY_FORWARD":      xsForward,
	"KEY_REFRESH":      xsRefresh,

	"KEY_LEFTALT":    xsAltL,
	"KEY_RIGHTALT":   xsAltR,
	"KEY_LEFTCTRL":   xsControlL,
	"KEY_RIGHTCTRL":  xsControlR,
	"KEY_LEFTSHIFT":  xsShiftL,
	"KEY_RIGHTSHIFT": xsShiftR,
	"KEY_LEFTMETA":   xsSuperL,
	"KEY_RIGHTMETA":  xsSuperR,

	"KEY_LEFT":     xsLeft,
	"KEY_RIGHT":    xsRight,
	"KEY_UP":       xsUp,
	"KEY_DOWN":     xsDown,
	"KEY_HOME":     xsHome,
	"KEY_END":      xsEnd,
	"KEY_PAGEUP":   xsPageUp,
	"KEY_PAGEDOWN": xsPageDown,
	"KEY_ENTER":    xsReturn,
	"KEY_TAB":      xsTab,
	"KEY_ESC":      xsEscape,
	"KEY_SPACE":    xsSpace,
}

// keysymForKey resolves a KEY_* name to an X11 keysym. Single letters
// and digits map to their latin keysyms directly.
func keysymForKey(name string) (xproto.Keysym, bool) {
	if sym, ok := keysyms[name]; ok {
		return sym, true
	}
	if rest, ok := strings.CutPrefix(name, "KEY_"); ok && len(rest) == 1 {
		c := rest[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return xproto.Keysym(c - 'A' + 'a'), true
		case c >= '0' && c <= '9':
			return xproto.Keysym(c), true
		}
	}
	return 0, false
}
