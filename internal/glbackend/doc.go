// Package glbackend implements gfx.Device on OpenGL 3.3 core (go-gl) and,
// under js/wasm, on WebGL2.
package glbackend
