package element

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Fields holds variant-specific element content keyed by field name.
//
// Values are limited to what the transport document can carry: nil, bool,
// string, integers, finite floats, ordered sequences, and nested string-keyed
// mappings. Normalize converts any accepted Go value to its canonical form
// (int64, float64, []any, map[string]any) so decoded descriptors compare equal
// to the ones that were encoded.
type Fields map[string]any

// Normalize returns a canonical deep copy of f, or an error naming the first
// key or value that cannot be represented. An empty f normalizes to nil.
func (f Fields) Normalize() (Fields, error) {
	if len(f) == 0 {
		return nil, nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		if err := checkKey(k, k); err != nil {
			return nil, err
		}
		nv, err := normalizeValue(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

// fieldError is returned by normalizeValue; EncodingError gets its ID filled in
// by the caller that knows the descriptor.
type fieldError struct {
	path   string
	reason string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.path, e.reason)
}

// textProblem describes why s cannot be carried as document text, or returns
// the empty string.
func textProblem(s string) string {
	if strings.IndexByte(s, 0) >= 0 {
		return "contains a NUL byte"
	}
	if !utf8.ValidString(s) {
		return "is not valid UTF-8"
	}
	return ""
}

func checkKey(path, key string) error {
	if p := textProblem(key); p != "" {
		return &fieldError{path, "key " + p}
	}
	return nil
}

func normalizeValue(path string, v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return n, nil
	case string:
		if p := textProblem(n); p != "" {
			return nil, &fieldError{path, "string " + p}
		}
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return normalizeUint(path, uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return normalizeUint(path, n)
	case float32:
		return normalizeFloat(path, float64(n))
	case float64:
		return normalizeFloat(path, n)
	case ID:
		return int64(n), nil
	case Fields:
		return normalizeMap(path, map[string]any(n))
	case map[string]any:
		return normalizeMap(path, n)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			ne, err := normalizeValue(fmt.Sprintf("%s[%d]", path, i), e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			ne, err := normalizeValue(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &fieldError{path, fmt.Sprintf("map key type %s is not string", rv.Type().Key())}
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			if err := checkKey(path+"."+k, k); err != nil {
				return nil, err
			}
			ne, err := normalizeValue(path+"."+k, iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	}
	return nil, &fieldError{path, fmt.Sprintf("unsupported type %T", v)}
}

func normalizeMap(path string, m map[string]any) (any, error) {
	out := make(map[string]any, len(m))
	for k, e := range m {
		if err := checkKey(path+"."+k, k); err != nil {
			return nil, err
		}
		ne, err := normalizeValue(path+"."+k, e)
		if err != nil {
			return nil, err
		}
		out[k] = ne
	}
	return out, nil
}

func normalizeUint(path string, n uint64) (any, error) {
	if n > math.MaxInt64 {
		return nil, &fieldError{path, "integer overflows int64"}
	}
	return int64(n), nil
}

func normalizeFloat(path string, f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &fieldError{path, "non-finite float"}
	}
	return f, nil
}
