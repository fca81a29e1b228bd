package element

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// IDFormat selects how element IDs are written on the wire.
type IDFormat int

const (
	// IDInteger writes IDs as integer literals: "id":0.
	IDInteger IDFormat = iota
	// IDFloat writes IDs as float literals: "id":0.0. Some renderer builds
	// read IDs through a floating-point path and mishandle integer zero.
	IDFloat
)

func (f IDFormat) String() string {
	switch f {
	case IDFloat:
		return "float"
	default:
		return "integer"
	}
}

// ParseIDFormat parses "integer" or "float". The empty string means IDInteger.
func ParseIDFormat(s string) (IDFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "integer", "int":
		return IDInteger, nil
	case "float":
		return IDFloat, nil
	}
	return IDInteger, fmt.Errorf("unknown id format %q (use integer or float)", s)
}

// Codec encodes descriptors to the renderer's JSON document format.
// The zero Codec writes integer IDs.
//
// Every ID, including 0, is written with the same representation and is never
// omitted. Field keys are written in a fixed order (id, type, root, then sorted
// field names) so equal descriptors produce identical bytes.
type Codec struct {
	IDFormat IDFormat
}

// DefaultCodec is the codec used by Encode.
var DefaultCodec = Codec{}

// Encode encodes d with DefaultCodec.
func Encode(d Descriptor) ([]byte, error) {
	return DefaultCodec.Encode(d)
}

// Encode returns the JSON document for d.
func (c Codec) Encode(d Descriptor) ([]byte, error) {
	return c.AppendEncode(nil, d)
}

// AppendEncode appends the JSON document for d to dst. On error dst is
// returned with its original length, so no partial document is left behind.
func (c Codec) AppendEncode(dst []byte, d Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return dst, err
	}
	fields, err := d.Fields.Normalize()
	if err != nil {
		return dst, asEncodingError(d.ID, err)
	}

	mark := len(dst)
	buf := append(dst, `{"id":`...)
	buf = c.AppendID(buf, d.ID)
	buf = append(buf, `,"type":`...)
	if buf, err = appendString(buf, string(d.Kind)); err != nil {
		return dst[:mark], asEncodingError(d.ID, err)
	}
	if d.Root {
		buf = append(buf, `,"root":true`...)
	}
	for _, k := range sortedKeys(fields) {
		buf = append(buf, ',')
		if buf, err = appendString(buf, k); err != nil {
			return dst[:mark], asEncodingError(d.ID, err)
		}
		buf = append(buf, ':')
		if buf, err = appendValue(buf, fields[k]); err != nil {
			return dst[:mark], asEncodingError(d.ID, err)
		}
	}
	return append(buf, '}'), nil
}

// AppendID appends id in the codec's ID format.
func (c Codec) AppendID(dst []byte, id ID) []byte {
	dst = strconv.AppendInt(dst, int64(id), 10)
	if c.IDFormat == IDFloat {
		dst = append(dst, ".0"...)
	}
	return dst
}

func asEncodingError(id ID, err error) error {
	var fe *fieldError
	if errors.As(err, &fe) {
		return &EncodingError{ID: id, Field: fe.path, Reason: fe.reason}
	}
	var ee *EncodingError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodingError{ID: id, Reason: err.Error()}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func appendString(dst []byte, s string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return dst, err
	}
	return append(dst, bytes.TrimRight(b.Bytes(), "\n")...), nil
}

// appendValue writes a normalized value. Floats always carry a decimal point
// or an exponent so they decode back as floats.
func appendValue(dst []byte, v any) ([]byte, error) {
	var err error
	switch n := v.(type) {
	case nil:
		return append(dst, "null"...), nil
	case bool:
		return strconv.AppendBool(dst, n), nil
	case string:
		return appendString(dst, n)
	case int64:
		return strconv.AppendInt(dst, n, 10), nil
	case float64:
		start := len(dst)
		dst = strconv.AppendFloat(dst, n, 'g', -1, 64)
		if bytes.IndexAny(dst[start:], ".eE") < 0 {
			dst = append(dst, ".0"...)
		}
		return dst, nil
	case []any:
		dst = append(dst, '[')
		for i, e := range n {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = appendValue(dst, e); err != nil {
				return dst, err
			}
		}
		return append(dst, ']'), nil
	case map[string]any:
		dst = append(dst, '{')
		for i, k := range sortedKeys(n) {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = appendString(dst, k); err != nil {
				return dst, err
			}
			dst = append(dst, ':')
			if dst, err = appendValue(dst, n[k]); err != nil {
				return dst, err
			}
		}
		return append(dst, '}'), nil
	}
	return dst, fmt.Errorf("unsupported type %T", v)
}

// Decode parses a descriptor document. It accepts IDs in either IDFormat.
func Decode(data []byte) (Descriptor, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return Descriptor{}, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Descriptor{}, fmt.Errorf("descriptor: want object, got %T", raw)
	}

	var d Descriptor
	rawID, ok := obj[keyID]
	if !ok {
		return Descriptor{}, errors.New("descriptor: missing id")
	}
	if d.ID, err = idFromValue(rawID); err != nil {
		return Descriptor{}, fmt.Errorf("descriptor: %w", err)
	}
	kind, ok := obj[keyType].(string)
	if !ok || kind == "" {
		return Descriptor{}, fmt.Errorf("descriptor %d: missing or non-string type", d.ID)
	}
	d.Kind = Kind(kind)
	if r, present := obj[keyRoot]; present {
		b, ok := r.(bool)
		if !ok {
			return Descriptor{}, fmt.Errorf("descriptor %d: root must be a boolean, got %T", d.ID, r)
		}
		d.Root = b
	}
	for k, v := range obj {
		switch k {
		case keyID, keyType, keyRoot:
			continue
		}
		if d.Fields == nil {
			d.Fields = make(Fields, len(obj))
		}
		d.Fields[k] = v
	}
	return d, nil
}

// DecodeIDs parses a JSON array of element IDs.
func DecodeIDs(data []byte) ([]ID, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("id list: want array, got %T", raw)
	}
	ids := make([]ID, len(arr))
	for i, v := range arr {
		if ids[i], err = idFromValue(v); err != nil {
			return nil, fmt.Errorf("id list [%d]: %w", i, err)
		}
	}
	return ids, nil
}

// decodeDocument parses exactly one JSON value, keeping integer and float
// literals apart.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after document")
	}
	return fromJSON(raw)
}

func fromJSON(v any) (any, error) {
	switch n := v.(type) {
	case json.Number:
		s := n.String()
		if strings.ContainsAny(s, ".eE") {
			return n.Float64()
		}
		return n.Int64()
	case []any:
		for i, e := range n {
			ne, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			n[i] = ne
		}
		return n, nil
	case map[string]any:
		for k, e := range n {
			ne, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			n[k] = ne
		}
		return n, nil
	}
	return v, nil
}

func idFromValue(v any) (ID, error) {
	var id float64
	switch n := v.(type) {
	case int64:
		if n < 0 || n > int64(MaxID) {
			return 0, fmt.Errorf("id %d out of range", n)
		}
		return ID(n), nil
	case float64:
		id = n
	default:
		return 0, fmt.Errorf("id must be a number, got %T", v)
	}
	if id != math.Trunc(id) || id < 0 || id > float64(MaxID) {
		return 0, fmt.Errorf("id %v is not a valid element id", id)
	}
	return ID(id), nil
}
