//go:build js && wasm

package glbackend

import "unsafe"

// ProcResolver returns the address of a GL entry point, or nil.
type ProcResolver func(name string) unsafe.Pointer

// Setup is a no-op under WebGL: the browser context exposes its methods
// directly.
func Setup(ProcResolver) error {
	return nil
}
