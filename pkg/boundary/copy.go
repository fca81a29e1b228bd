package boundary

import (
	"errors"
	"unsafe"
)

// MaxTextLen bounds the scan for a text payload's terminator.
const MaxTextLen = 16 << 20

var (
	errNullHandle    = errors.New("null handle")
	errNegativeCount = errors.New("negative count")
	errUnterminated  = errors.New("no terminator within MaxTextLen")
)

// CopyCString copies the NUL-terminated string at p into Go memory. The
// handle is borrowed: p is not read again after CopyCString returns.
// A nil p yields an error rather than a crash.
func CopyCString(p unsafe.Pointer) (string, error) {
	if p == nil {
		return "", errNullHandle
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
		if n > MaxTextLen {
			return "", errUnterminated
		}
	}
	return string(unsafe.Slice((*byte)(p), n)), nil
}

// CopyFloats copies count float32 values starting at p into a new slice.
// Reads never go past count. A zero count yields an empty, non-nil slice
// whatever p is.
func CopyFloats(p unsafe.Pointer, count int32) ([]float32, error) {
	switch {
	case count < 0:
		return nil, errNegativeCount
	case count == 0:
		return []float32{}, nil
	case p == nil:
		return nil, errNullHandle
	}
	out := make([]float32, count)
	copy(out, unsafe.Slice((*float32)(p), count))
	return out, nil
}
