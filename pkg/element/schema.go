package element

// schema lists the fields a built-in kind requires. Unknown kinds have no
// schema; the renderer is the authority on them.
type schema struct {
	strings []string
}

var schemas = map[Kind]schema{
	KindNode:            {},
	KindUnformattedText: {strings: []string{keyText}},
}

func (s schema) check(d Descriptor) error {
	for _, name := range s.strings {
		v, ok := d.Fields[name]
		if !ok {
			return &EncodingError{ID: d.ID, Field: name, Reason: "required by " + string(d.Kind)}
		}
		if _, ok := v.(string); !ok {
			return &EncodingError{ID: d.ID, Field: name, Reason: "must be a string"}
		}
	}
	return nil
}

// Known reports whether kind is one of the built-in kinds.
func Known(kind Kind) bool {
	_, ok := schemas[kind]
	return ok
}
