package app

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/depeter/mousebind/internal/config"
)

// captureLogs routes slog output into a buffer for the test's duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRunWarnsWhenX11BackendIgnoresDevicePath(t *testing.T) {
	// An empty DISPLAY makes the x11 connection fail fast, so Run
	// returns right after backend selection.
	t.Setenv("DISPLAY", "")
	buf := captureLogs(t)

	err := Run(context.Background(), Options{
		Config:     config.Default(),
		DevicePath: "/dev/input/event3",
		Backend:    "x11",
	})
	if err == nil {
		t.Fatal("expected connection error without a display")
	}
	if !strings.Contains(buf.String(), "ignoring -device") {
		t.Errorf("no warning about the ignored device path in logs:\n%s", buf.String())
	}
}

func TestRunRejectsUnknownBackend(t *testing.T) {
	err := Run(context.Background(), Options{
		Config:  config.Default(),
		Backend: "wayland",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("err = %v, want unknown backend error", err)
	}
}
