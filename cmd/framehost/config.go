package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend"
	"github.com/pelletier/go-toml/v2"
)

// Config is the host configuration. Values come from the defaults, then
// the TOML file named by -config, then explicitly set flags.
type Config struct {
	Title       string                `toml:"title"`
	Width       int                   `toml:"width"`
	Height      int                   `toml:"height"`
	Backend     string                `toml:"backend"`
	PresentMode framehost.PresentMode `toml:"present_mode"`
	AlphaMode   framehost.AlphaMode   `toml:"alpha_mode"`
	LogLevel    slog.Level            `toml:"log_level"`
	ClearColor  [4]float64            `toml:"clear_color"`

	// Frames is the number of frames rendered by the headless backend.
	Frames int `toml:"frames"`

	// StatsEvery is the number of frames between frame-rate reports.
	StatsEvery int `toml:"stats_every"`
}

func defaultConfig() Config {
	return Config{
		Title:       "framehost",
		Width:       800,
		Height:      600,
		Backend:     backend.Vulkan,
		PresentMode: framehost.PresentModeFifo,
		AlphaMode:   framehost.AlphaModeAuto,
		LogLevel:    slog.LevelInfo,
		ClearColor:  [4]float64{0.1, 0.2, 0.3, 1},
		Frames:      120,
		StatsEvery:  120,
	}
}

// loadConfig decodes a TOML file over cfg. Unknown keys are rejected.
func loadConfig(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config %d:%d: %w", row, col, err)
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	case !backend.IsRegistered(c.Backend):
		return fmt.Errorf("unknown backend %q (available: %v)", c.Backend, backend.Available())
	case c.Frames < 0:
		return fmt.Errorf("negative frame count %d", c.Frames)
	}
	return nil
}

// parseArgs builds the configuration from command-line arguments.
func parseArgs(args []string) (Config, error) {
	cfg := defaultConfig()
	fs := flag.NewFlagSet("framehost", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "TOML configuration file")
		title      = fs.String("title", cfg.Title, "window title")
		width      = fs.Int("width", cfg.Width, "window width")
		height     = fs.Int("height", cfg.Height, "window height")
		backend    = fs.String("backend", cfg.Backend, "GPU backend: vulkan or headless")
		frames     = fs.Int("frames", cfg.Frames, "frames to render with the headless backend")
		present    = cfg.PresentMode
		level      = cfg.LogLevel
	)
	fs.TextVar(&present, "present", cfg.PresentMode, "present mode: fifo, fifo-relaxed, mailbox or immediate")
	fs.TextVar(&level, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			return Config{}, err
		}
		err = loadConfig(f, &cfg)
		f.Close()
		if err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Title = *title
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "backend":
			cfg.Backend = *backend
		case "frames":
			cfg.Frames = *frames
		case "present":
			cfg.PresentMode = present
		case "log-level":
			cfg.LogLevel = level
		}
	})
	return cfg, cfg.validate()
}
