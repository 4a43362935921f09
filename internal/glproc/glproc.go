//go:build linux || darwin

// Package glproc resolves OpenGL entry points from the system GL library
// without cgo. It is meant for hosts that create the context themselves and
// only hand over a current context.
package glproc

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

var libraryNames = map[string][]string{
	"linux":  {"libGL.so.1", "libGL.so"},
	"darwin": {"/System/Library/Frameworks/OpenGL.framework/OpenGL"},
}

var procLoaderNames = []string{"glXGetProcAddressARB", "glXGetProcAddress"}

// Loader holds an open GL library handle.
type Loader struct {
	lib     uintptr
	getProc func(name string) uintptr
}

// Open loads the platform GL library.
func Open() (*Loader, error) {
	var errs []error
	for _, name := range libraryNames[runtime.GOOS] {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l := &Loader{lib: lib}
		for _, sym := range procLoaderNames {
			addr, err := purego.Dlsym(lib, sym)
			if err != nil || addr == 0 {
				continue
			}
			purego.RegisterFunc(&l.getProc, addr)
			break
		}
		return l, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("glproc: no GL library known for %s", runtime.GOOS)
	}
	return nil, fmt.Errorf("glproc: open GL library: %w", errors.Join(errs...))
}

// Resolve returns the address of the named entry point, or nil. The
// platform proc loader is asked first, then the library's symbol table.
func (l *Loader) Resolve(name string) unsafe.Pointer {
	if l.getProc != nil {
		if addr := l.getProc(name); addr != 0 {
			return unsafe.Pointer(addr)
		}
	}
	addr, err := purego.Dlsym(l.lib, name)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(addr)
}

// Close releases the library handle.
func (l *Loader) Close() error {
	if l.lib == 0 {
		return nil
	}
	err := purego.Dlclose(l.lib)
	l.lib = 0
	return err
}
