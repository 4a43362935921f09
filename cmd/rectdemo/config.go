package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kjkrol/rrect/internal/scene"
	"github.com/kjkrol/rrect/pkg/gfx"
	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
	// FrameRate caps the loop when VSync is off.
	FrameRate int `toml:"frame_rate"`
}

type RendererConfig struct {
	Capacity   int        `toml:"capacity"`
	DepthTest  bool       `toml:"depth_test"`
	ClearColor [4]float32 `toml:"clear_color"`
}

type Config struct {
	// Loader selects the GL entry point resolver: "glfw" or "native".
	Loader   string         `toml:"loader"`
	LogLevel string         `toml:"log_level"`
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Scene    scene.Config   `toml:"scene"`
}

func defaultConfig() Config {
	rc := gfx.DefaultRendererConfig()
	return Config{
		Loader:   "glfw",
		LogLevel: "info",
		Window: WindowConfig{
			Width:     1024,
			Height:    768,
			Title:     "rrect",
			VSync:     true,
			FrameRate: 60,
		},
		Renderer: RendererConfig{
			Capacity:   rc.Capacity,
			DepthTest:  rc.DepthTest,
			ClearColor: rc.ClearColor,
		},
		Scene: scene.DefaultConfig(),
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Loader {
	case "glfw", "native":
	default:
		return fmt.Errorf("unknown loader %q", c.Loader)
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) logLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

func (c Config) rendererConfig() gfx.RendererConfig {
	rc := gfx.DefaultRendererConfig()
	rc.Capacity = c.Renderer.Capacity
	rc.DepthTest = c.Renderer.DepthTest
	rc.ClearColor = c.Renderer.ClearColor
	return rc
}

func (c Config) frameInterval() time.Duration {
	if c.Window.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Window.FrameRate)
}
