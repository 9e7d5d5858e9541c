package capture

import "os"

// IsX11Session reports whether the current session should use the X11
// backend. XDG_SESSION_TYPE is authoritative when set; otherwise a bare
// DISPLAY without WAYLAND_DISPLAY counts as X11.
func IsX11Session() bool {
	switch os.Getenv("XDG_SESSION_TYPE") {
	case "x11":
		return true
	case "wayland":
		return false
	}
	return os.Getenv("DISPLAY") != "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
