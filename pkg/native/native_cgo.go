//go:build cgo && xframes

package native

/*
#cgo LDFLAGS: -lxframesshared
#include <stdlib.h>
#include "xframes.h"
*/
import "C"

import (
	"bytes"
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/go-xframes/xframes/pkg/boundary"
)

// Available reports whether the native library is linked in.
const Available = true

// inbound receives every callback. It is set once, before init is called.
var inbound atomic.Pointer[boundary.Inbound]

// startStrings stay allocated for the life of the process; the renderer may
// read them after init returns.
var startStrings []*C.char

func cString(name string, b []byte) (*C.char, error) {
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, fmt.Errorf("native: %s contains a NUL byte", name)
	}
	return C.CString(string(b)), nil
}

// Start installs the callbacks and calls the library's init. It returns when
// init returns.
func (r *Renderer) Start(cfg boundary.StartConfig, in *boundary.Inbound) error {
	assets, err := cString("assets path", []byte(cfg.AssetsPath))
	if err != nil {
		return err
	}
	fonts, err := cString("font definitions", cfg.FontDefs)
	if err != nil {
		C.free(unsafe.Pointer(assets))
		return err
	}
	styles, err := cString("style overrides", cfg.StyleOverrides)
	if err != nil {
		C.free(unsafe.Pointer(assets))
		C.free(unsafe.Pointer(fonts))
		return err
	}
	if !inbound.CompareAndSwap(nil, in) {
		C.free(unsafe.Pointer(assets))
		C.free(unsafe.Pointer(fonts))
		C.free(unsafe.Pointer(styles))
		return ErrStarted
	}
	startStrings = []*C.char{assets, fonts, styles}

	C.xf_start(assets, fonts, styles)
	return nil
}

// SetElement passes the buffer to the library, which copies it before
// returning.
func (r *Renderer) SetElement(b *boundary.Buffer) {
	C.setElement((*C.char)(b.Pointer()))
	runtime.KeepAlive(b)
}

// SetChildren passes the child list of parent to the library.
func (r *Renderer) SetChildren(parent int32, b *boundary.Buffer) {
	C.setChildren(C.int(parent), (*C.char)(b.Pointer()))
	runtime.KeepAlive(b)
}
