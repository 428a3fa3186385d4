// Command framehost opens a window and clears it every frame, exercising
// the framehost event loop, surface management and recovery paths.
//
// Usage:
//
//	framehost [-config host.toml] [-backend vulkan|headless] [-present mailbox] ...
//
// The headless backend needs no display; it renders -frames frames and
// exits, which makes it useful for smoke tests.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend"
	"github.com/gogpu/framehost/backend/headless"
	"github.com/gogpu/framehost/platform/glfwwin"
)

func init() {
	// GLFW and most window systems must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "framehost:", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	framehost.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("framehost failed", "err", err)
		os.Exit(1)
	}
}

// host is what a run needs from the platform side.
type host struct {
	backend framehost.Backend
	window  framehost.Window
	events  framehost.EventSource
	close   func()
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	h, err := openHost(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	sc, err := framehost.Initialize(ctx, h.backend, h.window,
		framehost.WithPresentMode(cfg.PresentMode),
		framehost.WithAlphaMode(cfg.AlphaMode))
	if err != nil {
		h.backend.Destroy()
		return err
	}
	defer sc.Release()

	mode, err := clearModeFactory(cfg.ClearColor)(ctx, sc)
	if err != nil {
		return err
	}
	d, err := framehost.NewDriver(sc, h.window, mode,
		framehost.WithInstrument(newFrameStats(logger, cfg.StatsEvery, time.Now)))
	if err != nil {
		return err
	}
	err = d.Run(ctx, h.events)
	logger.Info("event loop finished", "frames", d.Frames())
	return err
}

// openHost opens the backend named in cfg and a matching window: an
// in-memory one for the headless backend, a GLFW window otherwise.
func openHost(cfg Config) (*host, error) {
	if cfg.Backend == backend.Headless {
		b, err := backend.Open(cfg.Backend)
		if err != nil {
			return nil, err
		}
		w := headless.NewWindow(uint32(cfg.Width), uint32(cfg.Height))
		w.Events().Pump(cfg.Frames)
		return &host{backend: b, window: w, events: w.Events(), close: func() {}}, nil
	}

	w, err := glfwwin.Open(glfwwin.Config{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Resizable: true,
	})
	if err != nil {
		return nil, err
	}
	b, err := backend.Open(cfg.Backend)
	if err != nil {
		w.Close()
		return nil, err
	}
	return &host{backend: b, window: w, events: w, close: w.Close}, nil
}
