//go:build !js

package glbackend

import "github.com/kjkrol/rrect/pkg/gfx"

// NewContext loads the GL entry points, wraps the current context in a
// device and initializes the rectangle renderer on it.
func NewContext(resolver ProcResolver, conf gfx.RendererConfig) (*gfx.Context, error) {
	if err := Setup(resolver); err != nil {
		return nil, err
	}
	return gfx.Initialize(NewDevice(), conf)
}
