//go:build js && wasm

package main

import (
	"errors"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/kjkrol/rrect/internal/glbackend"
	"github.com/kjkrol/rrect/internal/scene"
	"github.com/kjkrol/rrect/pkg/gfx"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	gfx.SetLogger(logger)

	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "rrect")
	if canvas.IsNull() {
		logger.Error("canvas #rrect not found")
		return
	}
	webgl := canvas.Call("getContext", "webgl2", map[string]any{"antialias": false})

	ctx, err := glbackend.NewWebContext(webgl, gfx.DefaultRendererConfig())
	if err != nil {
		logger.Error("renderer init failed", "err", err)
		var ce *gfx.CompileError
		if errors.As(err, &ce) {
			js.Global().Get("console").Call("error", ce.Log)
		}
		return
	}

	sc := scene.DefaultConfig()
	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		dpr := js.Global().Get("devicePixelRatio").Float()
		width := canvas.Get("clientWidth").Int()
		height := canvas.Get("clientHeight").Int()
		fbWidth, fbHeight := int(float64(width)*dpr), int(float64(height)*dpr)
		if canvas.Get("width").Int() != fbWidth || canvas.Get("height").Int() != fbHeight {
			canvas.Set("width", fbWidth)
			canvas.Set("height", fbHeight)
		}
		ctx.SetViewport(fbWidth, fbHeight)

		t := args[0].Float() / 1000
		scene.Submit(ctx, sc, width, height, t)
		ctx.BeginFrame(width, height)

		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)

	select {}
}
