// Command rectdemo drives the rectangle renderer from a glfw window, or
// renders a single frame headless with -snapshot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kjkrol/rrect/internal/glbackend"
	"github.com/kjkrol/rrect/internal/glproc"
	"github.com/kjkrol/rrect/internal/raster"
	"github.com/kjkrol/rrect/internal/scene"
	"github.com/kjkrol/rrect/pkg/gfx"
)

func init() {
	// GL calls must come from the thread that owns the context.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	snapshot := flag.String("snapshot", "", "render one frame in software to this PNG file and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	lvl, _ := cfg.logLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	gfx.SetLogger(logger)

	if *snapshot != "" {
		err = renderSnapshot(cfg, *snapshot)
	} else {
		err = run(cfg)
	}
	if err != nil {
		logger.Error("rectdemo failed", "err", err)
		var ce *gfx.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stderr, ce.Log)
		}
		os.Exit(1)
	}
}

func run(cfg Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	resolver, closeResolver, err := procResolver(cfg.Loader)
	if err != nil {
		return err
	}
	defer closeResolver()

	ctx, err := glbackend.NewContext(resolver, cfg.rendererConfig())
	if err != nil {
		return err
	}
	defer ctx.Close()

	var pacer *framePacer
	if !cfg.Window.VSync {
		pacer = newFramePacer(cfg.frameInterval())
	}
	start := time.Now()
	for !win.ShouldClose() {
		width, height := win.GetSize()
		fbWidth, fbHeight := win.GetFramebufferSize()
		ctx.SetViewport(fbWidth, fbHeight)

		t := 0.0
		if cfg.Scene.Animate {
			t = time.Since(start).Seconds()
		}
		scene.Submit(ctx, cfg.Scene, width, height, t)
		ctx.BeginFrame(width, height)

		win.SwapBuffers()
		glfw.PollEvents()
		if pacer != nil {
			pacer.wait()
		}
	}
	return nil
}

func procResolver(loader string) (glbackend.ProcResolver, func(), error) {
	if loader != "native" {
		return glfw.GetProcAddress, func() {}, nil
	}
	l, err := glproc.Open()
	if err != nil {
		return nil, nil, err
	}
	return l.Resolve, func() { _ = l.Close() }, nil
}

// renderSnapshot renders one frame through the software device.
func renderSnapshot(cfg Config, path string) error {
	dev := raster.New(cfg.Window.Width, cfg.Window.Height)
	ctx, err := gfx.Initialize(dev, cfg.rendererConfig())
	if err != nil {
		return err
	}
	defer ctx.Close()

	ctx.SetViewport(cfg.Window.Width, cfg.Window.Height)
	n := scene.Submit(ctx, cfg.Scene, cfg.Window.Width, cfg.Window.Height, 0)
	ctx.BeginFrame(cfg.Window.Width, cfg.Window.Height)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dev.Target); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	gfx.Logger().Info("snapshot written", "path", path, "rects", n)
	return f.Close()
}
