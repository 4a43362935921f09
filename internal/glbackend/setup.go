//go:build !js

package glbackend

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/rrect/pkg/gfx"
)

// ProcResolver returns the address of a GL entry point, or nil.
type ProcResolver func(name string) unsafe.Pointer

var (
	setupOnce sync.Once
	setupErr  error

	initProcs = gl.InitWithProcAddrFunc
)

// Setup loads the GL entry points through resolver. Only the first call does
// any work; later calls return its result.
func Setup(resolver ProcResolver) error {
	setupOnce.Do(func() {
		if resolver == nil {
			setupErr = fmt.Errorf("glbackend: nil proc resolver")
			return
		}
		if err := initProcs(resolver); err != nil {
			setupErr = fmt.Errorf("glbackend: load gl entry points: %w", err)
			return
		}
		gfx.Logger().Info("gl entry points loaded")
	})
	return setupErr
}
