package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/depeter/mousebind/internal/app"
	"github.com/depeter/mousebind/internal/capture"
	"github.com/depeter/mousebind/internal/config"
)

const usage = `mousebind - remap extra mouse buttons and wheel tilt to system actions

Usage:
  mousebind run [-device path] [-config path] [-backend auto|evdev|x11] [-grab] [-verbose]
  mousebind list-devices
  mousebind config-path
  mousebind write-default-config [-path path] [-force]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		runCmd(os.Args[2:])
	case "list-devices":
		listDevicesCmd()
	case "config-path":
		fmt.Println(config.Path())
	case "write-default-config":
		writeDefaultConfigCmd(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

func runCmd(args []string) {
	flags := flag.NewFlagSet("run", flag.ExitOnError)
	device := flags.String("device", "", "restrict capture to a single /dev/input/eventX node")
	configPath := flags.String("config", "", "path to config.toml (defaults to the XDG location)")
	backend := flags.String("backend", "auto", "capture backend: auto, evdev or x11")
	grab := flags.Bool("grab", false, "grab bound buttons so other applications don't also handle them (x11 backend)")
	verbose := flags.Bool("verbose", false, "enable debug logging")
	flags.Parse(args)
	setupLogging(*verbose)

	path := *configPath
	if path == "" {
		path = config.Path()
	}

	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("config not found, writing defaults", "path", path)
		cfg = config.Default()
		if err := cfg.Save(path); err != nil {
			slog.Error("failed to write default config", "err", err)
			os.Exit(1)
		}
	} else if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, app.Options{
		Config:     cfg,
		DevicePath: *device,
		Backend:    *backend,
		Grab:       *grab,
	})
	if err != nil {
		slog.Error("daemon failed", "err", err)
		os.Exit(1)
	}
}

func listDevicesCmd() {
	devices, err := capture.ListDevices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list devices: %v\n", err)
		os.Exit(1)
	}
	for _, d := range devices {
		fmt.Printf("%s  %s\n", d.Path, d.Name)
	}
}

func writeDefaultConfigCmd(args []string) {
	flags := flag.NewFlagSet("write-default-config", flag.ExitOnError)
	path := flags.String("path", "", "output path (defaults to the XDG location)")
	force := flags.Bool("force", false, "overwrite an existing file")
	flags.Parse(args)
	setupLogging(false)

	p := *path
	if p == "" {
		p = config.Path()
	}
	if _, err := os.Stat(p); err == nil && !*force {
		slog.Warn("config already exists, use -force to overwrite", "path", p)
		return
	}
	if err := config.Default().Save(p); err != nil {
		slog.Error("failed to write config", "err", err)
		os.Exit(1)
	}
	slog.Info("wrote default config", "path", p)
}
