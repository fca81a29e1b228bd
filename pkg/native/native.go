// Package native binds the xframes shared library.
//
// The binding is compiled only with cgo enabled and the xframes build tag:
//
//	go build -tags xframes ./cmd/xframes-hello
//
// The library is linked as -lxframesshared; point CGO_LDFLAGS at its
// directory when it is not on the default search path. Without the tag the
// package builds a stub whose Start fails with ErrUnavailable, so everything
// above it can be compiled and tested without the library.
package native

import (
	"errors"

	"github.com/go-xframes/xframes/pkg/boundary"
)

var (
	// ErrUnavailable is returned by Start when the binary was built without
	// the native library.
	ErrUnavailable = errors.New("native: xframes renderer not built in (build with -tags xframes and cgo)")
	// ErrStarted is returned by a second Start. The library keeps one set of
	// callbacks for the life of the process.
	ErrStarted = errors.New("native: renderer already started")
)

// Renderer is the native xframes renderer. The zero value is ready to use;
// only one Renderer may be started per process.
type Renderer struct{}

var _ boundary.Renderer = (*Renderer)(nil)

// New returns the native renderer.
func New() *Renderer {
	return &Renderer{}
}
