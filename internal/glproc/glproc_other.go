//go:build !linux && !darwin

package glproc

import (
	"fmt"
	"runtime"
	"unsafe"
)

type Loader struct{}

func Open() (*Loader, error) {
	return nil, fmt.Errorf("glproc: unsupported platform %s", runtime.GOOS)
}

func (l *Loader) Resolve(string) unsafe.Pointer { return nil }

func (l *Loader) Close() error { return nil }
