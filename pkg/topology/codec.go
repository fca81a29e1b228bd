package topology

import (
	"fmt"

	"github.com/go-xframes/xframes/pkg/element"
)

// AppendChildren appends the JSON array for ids, writing each ID the way c
// writes descriptor IDs. On error dst is returned unchanged.
func AppendChildren(dst []byte, c element.Codec, ids []element.ID) ([]byte, error) {
	for i, id := range ids {
		if !id.Valid() {
			return dst, &element.EncodingError{ID: id, Reason: fmt.Sprintf("child %d out of range", i)}
		}
	}
	buf := append(dst, '[')
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = c.AppendID(buf, id)
	}
	return append(buf, ']'), nil
}

// EncodeChildren returns the JSON array for ids.
func EncodeChildren(c element.Codec, ids []element.ID) ([]byte, error) {
	return AppendChildren(nil, c, ids)
}

// DecodeChildren parses a JSON array of child IDs.
func DecodeChildren(data []byte) ([]element.ID, error) {
	return element.DecodeIDs(data)
}
