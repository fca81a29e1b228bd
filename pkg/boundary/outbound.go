package boundary

import (
	"github.com/go-xframes/xframes/pkg/element"
	"github.com/go-xframes/xframes/pkg/topology"
)

// Outbound encodes application data and submits it to a Renderer.
type Outbound struct {
	renderer Renderer
	codec    element.Codec
}

// NewOutbound returns an Outbound writing to r with codec c.
func NewOutbound(r Renderer, c element.Codec) *Outbound {
	return &Outbound{renderer: r, codec: c}
}

// Codec returns the codec used for descriptors and child lists.
func (o *Outbound) Codec() element.Codec {
	return o.codec
}

// SubmitElement encodes d and passes it to the renderer. If encoding fails
// the renderer is not called.
func (o *Outbound) SubmitElement(d element.Descriptor) error {
	buf, err := Fill(func(dst []byte) ([]byte, error) {
		return o.codec.AppendEncode(dst, d)
	})
	if err != nil {
		return err
	}
	defer buf.Release()
	o.renderer.SetElement(buf)
	return nil
}

// SubmitChildren encodes children and passes them to the renderer as the
// complete child list of parent.
func (o *Outbound) SubmitChildren(parent element.ID, children []element.ID) error {
	if !parent.Valid() {
		return &element.EncodingError{ID: parent, Reason: "parent id out of range"}
	}
	buf, err := Fill(func(dst []byte) ([]byte, error) {
		return topology.AppendChildren(dst, o.codec, children)
	})
	if err != nil {
		return err
	}
	defer buf.Release()
	o.renderer.SetChildren(int32(parent), buf)
	return nil
}
