//go:build js && wasm

package glbackend

import (
	"syscall/js"

	"github.com/kjkrol/rrect/pkg/gfx"
)

// NewWebContext initializes the rectangle renderer on a WebGL2 context.
func NewWebContext(webgl js.Value, conf gfx.RendererConfig) (*gfx.Context, error) {
	dev, err := NewWebDevice(webgl)
	if err != nil {
		return nil, err
	}
	return gfx.Initialize(dev, conf)
}
