package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm/leb128"
)

// reader is the cursor over the undecoded remainder of the input. Every read
// consumes a prefix and advances pos, so pos is always the offset reported in
// errors. It deliberately never returns io.EOF: running out of bytes is a
// decode error, not a stream condition.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

// Read implements io.Reader over the remainder so the leb128 and ieee754
// packages can consume from the shared cursor.
func (r *reader) Read(p []byte) (int, error) {
	if r.remaining() < len(p) {
		return 0, &DecodeError{Offset: r.pos, Err: ErrUnexpectedEnd}
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

func (r *reader) readByte() (byte, error) {
	if r.remaining() == 0 {
		return 0, &DecodeError{Offset: r.pos, Err: ErrUnexpectedEnd}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadByte implements io.ByteReader for the leb128 package.
func (r *reader) ReadByte() (byte, error) {
	return r.readByte()
}

func (r *reader) peekByte() (byte, error) {
	if r.remaining() == 0 {
		return 0, &DecodeError{Offset: r.pos, Err: ErrUnexpectedEnd}
	}
	return r.buf[r.pos], nil
}

// readBytes consumes n bytes and returns them as a view into the input, not a
// copy. Callers that store the result beyond the decode must copy it unless
// borrowing is intended, as it is for custom section payloads.
func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, &DecodeError{Offset: r.pos, Err: ErrUnexpectedEnd}
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// uint32 decodes an unsigned 32-bit varint, tagging any failure with the
// offset the integer started at.
func (r *reader) uint32() (uint32, error) {
	off := r.pos
	v, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, errAt(off, err)
	}
	return v, nil
}

// vectorLen decodes the element count prefix of a vector. Counts larger than
// the remaining input are rejected up front: every element consumes at least
// one byte, so such a count cannot be honest, and failing here keeps a hostile
// count from sizing an allocation.
func (r *reader) vectorLen() (uint32, error) {
	off := r.pos
	v, err := r.uint32()
	if err != nil {
		return 0, err
	}
	if int64(v) > int64(r.remaining()) {
		return 0, errAt(off, fmt.Errorf("%w: vector of %d elements", ErrUnexpectedEnd, v))
	}
	return v, nil
}

// failf reports a grammar violation of the given kind at offset off, which is
// normally captured before consuming the offending byte.
func failf(off int, kind error, format string, args ...interface{}) error {
	return &DecodeError{Offset: off, Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}
