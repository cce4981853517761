// Package ieee754 decodes the fixed-width float encodings of the WebAssembly
// 1.0 (MVP) Binary Format: 4 or 8 little-endian bytes reinterpreted as an
// IEEE 754 value.
// See https://www.w3.org/TR/wasm-core-1/#floating-point%E2%91%A2
package ieee754

import (
	"encoding/binary"
	"io"
	"math"
)

// DecodeFloat32 reads the 4-byte f32 literal of a constant instruction.
func DecodeFloat32(r io.Reader) (float32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf)), nil
}

// DecodeFloat64 reads the 8-byte f64 literal of a constant instruction.
func DecodeFloat64(r io.Reader) (float64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}
