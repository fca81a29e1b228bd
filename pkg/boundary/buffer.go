// Package boundary owns every buffer that crosses the renderer boundary.
//
// Outbound, descriptors and child lists are encoded into NUL-terminated
// Buffers that stay valid and unmoved for the whole renderer call and are
// released only after it returns. Inbound, renderer-owned text and float
// arrays are copied into Go values before control returns to the renderer.
package boundary

import (
	"bytes"
	"errors"
	"sync"
	"unsafe"
)

// ErrEmbeddedNUL is returned when encoded content contains a NUL byte, which
// would truncate the document at the boundary.
var ErrEmbeddedNUL = errors.New("boundary: encoded document contains NUL byte")

const maxPooledBuffer = 64 << 10

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

// Buffer is a NUL-terminated byte buffer handed to the renderer for the
// duration of one call. The caller that acquires a Buffer releases it, after
// the call that consumes it has returned; the renderer never frees it.
type Buffer struct {
	data     *[]byte
	released bool
}

// Fill acquires a pooled buffer and lets write append the document to it.
// If write fails, or produces a NUL byte, the buffer goes straight back to
// the pool and no Buffer escapes.
func Fill(write func(dst []byte) ([]byte, error)) (*Buffer, error) {
	p := bufferPool.Get().(*[]byte)
	out, err := write((*p)[:0])
	if err == nil && bytes.IndexByte(out, 0) >= 0 {
		err = ErrEmbeddedNUL
	}
	if err != nil {
		*p = (*p)[:0]
		bufferPool.Put(p)
		return nil, err
	}
	*p = append(out, 0)
	return &Buffer{data: p}, nil
}

// NewBuffer copies s into a fresh Buffer.
func NewBuffer(s []byte) (*Buffer, error) {
	return Fill(func(dst []byte) ([]byte, error) {
		return append(dst, s...), nil
	})
}

func (b *Buffer) check() {
	if b == nil || b.released {
		panic("boundary: use of released Buffer")
	}
}

// Bytes returns the content without the terminator. The slice is only valid
// until Release.
func (b *Buffer) Bytes() []byte {
	b.check()
	d := *b.data
	return d[:len(d)-1]
}

// Len returns the content length, excluding the terminator.
func (b *Buffer) Len() int {
	b.check()
	return len(*b.data) - 1
}

// Pointer returns the address of the first byte, suitable for passing as a
// const char*. The memory holds no Go pointers and stays put until Release.
func (b *Buffer) Pointer() unsafe.Pointer {
	b.check()
	return unsafe.Pointer(unsafe.SliceData(*b.data))
}

// String returns a copy of the content.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Release returns the buffer to the pool. Releasing twice is a no-op.
func (b *Buffer) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	p := b.data
	b.data = nil
	if cap(*p) > maxPooledBuffer {
		return
	}
	*p = (*p)[:0]
	bufferPool.Put(p)
}
