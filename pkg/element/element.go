// Package element describes UI elements as the renderer understands them.
//
// A Descriptor carries an element's identity (ID), its variant (Kind), whether
// it is the tree root, and an open set of variant-specific Fields. Descriptors
// say nothing about topology; parent/child links are submitted separately
// through package topology.
package element

import (
	"fmt"
	"math"
)

// ID identifies an element. IDs are assigned by application code and must be
// unique among live elements. The renderer boundary carries IDs as C ints, so
// valid IDs lie in [0, math.MaxInt32].
type ID int

// MaxID is the largest ID the boundary can carry.
const MaxID ID = math.MaxInt32

// Valid reports whether id can cross the boundary.
func (id ID) Valid() bool {
	return id >= 0 && id <= MaxID
}

// Kind selects the element variant.
type Kind string

const (
	// KindNode is a plain container.
	KindNode Kind = "node"
	// KindUnformattedText is a text leaf carrying a "text" field.
	KindUnformattedText Kind = "unformatted-text"
)

// Reserved field names. They are encoded from Descriptor's own fields and
// may not appear in Fields.
const (
	keyID   = "id"
	keyType = "type"
	keyRoot = "root"
	keyText = "text"
)

// Descriptor is the description of one UI element. A nil and an empty Fields
// are equivalent; both encode to no fields and Decode returns nil.
type Descriptor struct {
	ID     ID
	Kind   Kind
	Root   bool
	Fields Fields
}

// Node returns a container descriptor.
func Node(id ID) Descriptor {
	return Descriptor{ID: id, Kind: KindNode}
}

// RootNode returns the container descriptor that roots the tree.
func RootNode(id ID) Descriptor {
	return Descriptor{ID: id, Kind: KindNode, Root: true}
}

// UnformattedText returns a text leaf descriptor.
func UnformattedText(id ID, text string) Descriptor {
	return Descriptor{ID: id, Kind: KindUnformattedText, Fields: Fields{keyText: text}}
}

// New returns a descriptor of any kind, including renderer-defined kinds this
// package knows nothing about. Field values are normalized; see Fields.
func New(id ID, kind Kind, fields Fields) (Descriptor, error) {
	d := Descriptor{ID: id, Kind: kind}
	if len(fields) > 0 {
		norm, err := fields.Normalize()
		if err != nil {
			return Descriptor{}, asEncodingError(id, err)
		}
		d.Fields = norm
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Text returns the "text" field, if present and a string.
func (d Descriptor) Text() (string, bool) {
	s, ok := d.Fields[keyText].(string)
	return s, ok
}

// Validate checks the descriptor against its kind's schema and the
// constraints of the transport encoding.
func (d Descriptor) Validate() error {
	if !d.ID.Valid() {
		return &EncodingError{ID: d.ID, Reason: fmt.Sprintf("id %d out of range [0, %d]", d.ID, MaxID)}
	}
	if d.Kind == "" {
		return &EncodingError{ID: d.ID, Reason: "missing kind"}
	}
	if p := textProblem(string(d.Kind)); p != "" {
		return &EncodingError{ID: d.ID, Reason: "kind " + p}
	}
	for k := range d.Fields {
		switch k {
		case keyID, keyType, keyRoot:
			return &EncodingError{ID: d.ID, Field: k, Reason: "reserved field name"}
		}
		if p := textProblem(k); p != "" {
			return &EncodingError{ID: d.ID, Field: k, Reason: "key " + p}
		}
	}
	if s, ok := schemas[d.Kind]; ok {
		if err := s.check(d); err != nil {
			return err
		}
	}
	return nil
}

func (d Descriptor) String() string {
	if d.Root {
		return fmt.Sprintf("%s#%d(root)", d.Kind, d.ID)
	}
	return fmt.Sprintf("%s#%d", d.Kind, d.ID)
}

// EncodingError reports descriptor content that cannot be represented in the
// transport document format.
type EncodingError struct {
	ID     ID
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("element %d: field %q: %s", e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("element %d: %s", e.ID, e.Reason)
}
