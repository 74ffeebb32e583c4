package bridge

import (
	"context"
	"sync"

	"github.com/skifflang/wasm-host/errors"
)

// HostBuffer is a transient host-native copy of a runtime string. The backing
// buffer is NUL-terminated for host APIs that expect C strings. It is
// exclusively owned by the routine that obtained it and must be released on
// every exit path, including when the underlying write fails.
type HostBuffer struct {
	buf []byte
}

const maxPooledBufferCapacity = 64 * 1024

var hostBufferPool = sync.Pool{
	New: func() any {
		return &HostBuffer{buf: make([]byte, 0, 128)}
	},
}

// Bytes returns the string contents without the terminator.
func (hb *HostBuffer) Bytes() []byte {
	return hb.buf[:len(hb.buf)-1]
}

// Len returns the content length in bytes.
func (hb *HostBuffer) Len() int {
	return len(hb.buf) - 1
}

// Release returns the buffer to the pool; hb is invalid afterwards.
func (hb *HostBuffer) Release() {
	// Only pool small buffers to prevent memory bloat
	if cap(hb.buf) > maxPooledBufferCapacity {
		return
	}
	hb.buf = hb.buf[:0]
	hostBufferPool.Put(hb)
}

// ToHost copies runtime string s into a NUL-terminated host buffer: the
// length comes from the program's byte-size accessor, the bytes from guest
// memory. The caller owns the buffer. The input string is never mutated.
func (b *Bridge) ToHost(ctx context.Context, s Ref) (*HostBuffer, error) {
	size, err := b.program.StringByteSize(ctx, s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseMarshal, errors.KindInvalidInput, err, "string byte size")
	}
	data, err := b.mem.Read(uint32(s), size)
	if err != nil {
		return nil, errors.New(errors.PhaseMarshal, errors.KindOutOfBounds).
			Detail("string bytes at %#x, length %d", uint32(s), size).
			Cause(err).
			Build()
	}
	hb := hostBufferPool.Get().(*HostBuffer)
	hb.buf = append(hb.buf[:0], data...)
	hb.buf = append(hb.buf, 0)
	return hb, nil
}

// FromHost constructs a new runtime string copying buf. The bytes pass
// through a scratch guest allocation that is freed on all paths; ownership of
// the resulting string belongs to the program's memory model and the bridge
// retains no reference. A failed scratch allocation has no recovery path.
func (b *Bridge) FromHost(ctx context.Context, buf []byte) (Ref, error) {
	size := uint32(len(buf))
	ptr, err := b.alloc.Alloc(size)
	if err != nil {
		return NilRef, errors.AllocationFailed(errors.PhaseMarshal, size, err)
	}
	defer b.alloc.Free(ptr, size)

	if size > 0 {
		if err := b.mem.Write(ptr, buf); err != nil {
			return NilRef, errors.New(errors.PhaseMarshal, errors.KindOutOfBounds).
				Detail("scratch buffer at %#x, length %d", ptr, size).
				Cause(err).
				Build()
		}
	}
	s, err := b.program.StringCreate(ctx, ptr, size)
	if err != nil {
		return NilRef, errors.Wrap(errors.PhaseMarshal, errors.KindInvalidInput, err, "string create")
	}
	return s, nil
}
