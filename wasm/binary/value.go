package binary

import (
	"unicode/utf8"

	"github.com/wasmparse/wasmparse/wasm"
)

func decodeValueType(r *reader) (wasm.ValueType, error) {
	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return b, nil
	default:
		return 0, failf(off, ErrInvalidByte, "invalid value type: %#x", b)
	}
}

func decodeValueTypes(r *reader, num uint32) ([]wasm.ValueType, error) {
	off := r.pos
	buf, err := r.readBytes(int(num))
	if err != nil {
		return nil, err
	}

	ret := make([]wasm.ValueType, num)
	for i, v := range buf {
		switch v {
		case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
			ret[i] = v
		default:
			return nil, failf(off+i, ErrInvalidByte, "invalid value type: %#x", v)
		}
	}
	return ret, nil
}

// decodeResultType reads a vector-length prefix followed by that many value
// types, preserving order.
func decodeResultType(r *reader) ([]wasm.ValueType, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, err
	}
	return decodeValueTypes(r, num)
}

// decodeUTF8 reads a size-prefixed name. The bytes are copied into the
// returned string, so names never alias the input buffer.
func decodeUTF8(r *reader, context string) (string, error) {
	num, err := r.vectorLen()
	if err != nil {
		return "", err
	}

	off := r.pos
	buf, err := r.readBytes(int(num))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(buf) {
		return "", failf(off, ErrInvalidUTF8, "%s", context)
	}
	return string(buf), nil
}
