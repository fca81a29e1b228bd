//go:build !cgo || !xframes

package native

import "github.com/go-xframes/xframes/pkg/boundary"

// Available reports whether the native library is linked in.
const Available = false

// Start always fails with ErrUnavailable.
func (r *Renderer) Start(boundary.StartConfig, *boundary.Inbound) error {
	return ErrUnavailable
}

// SetElement is a no-op.
func (r *Renderer) SetElement(*boundary.Buffer) {}

// SetChildren is a no-op.
func (r *Renderer) SetChildren(int32, *boundary.Buffer) {}
