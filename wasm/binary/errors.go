package binary

import (
	"errors"
	"fmt"

	"github.com/wasmparse/wasmparse/wasm/leb128"
)

// Sentinel error kinds. Every error returned by this package wraps exactly one
// of these, so callers can classify failures with errors.Is and recover the
// input position with errors.As on *DecodeError.
var (
	// ErrUnexpectedEnd means the input ended before the construct being
	// decoded was complete.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrInvalidMagicNumber means the input doesn't begin with "\0asm".
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidVersion means the 4-byte version field isn't 1.
	ErrInvalidVersion = errors.New("invalid version header")

	// ErrInvalidByte means a tag byte matched no alternative the grammar
	// permits at that position.
	ErrInvalidByte = errors.New("invalid byte")

	// ErrInvalidSectionID means a section ID byte above the data section's.
	ErrInvalidSectionID = errors.New("invalid section id")

	// ErrInvalidUTF8 means a name's payload isn't valid UTF-8.
	ErrInvalidUTF8 = errors.New("name must be valid utf-8")

	// ErrIntegerOverflow means a variable-length integer exceeded its
	// declared bit width.
	ErrIntegerOverflow = leb128.ErrOverflow

	// ErrUnknownOpcode means an instruction byte the dispatch table doesn't
	// define.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrSectionSizeMismatch means decoding a size-prefixed region consumed a
	// different number of bytes than the prefix declared. Offsets cannot be
	// trusted after this, so it is always terminal.
	ErrSectionSizeMismatch = errors.New("section size mismatch")

	// ErrSectionOrder means a known section was duplicated or appeared after
	// a section with a higher ID.
	ErrSectionOrder = errors.New("section out of order")

	// ErrNestingTooDeep means control instructions nested beyond the
	// configured maximum depth.
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// DecodeError is the error type returned by DecodeModule, recording the byte
// offset into the input at which decoding failed. Unwrap exposes the sentinel
// kind and any context added while propagating.
type DecodeError struct {
	// Offset is the position of the first byte the decoder could not accept.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset 0x%x: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// errAt tags err with the given input offset unless a nested decode already
// did: the innermost offset is the one that locates the fault.
func errAt(offset int, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Offset: offset, Err: err}
}
