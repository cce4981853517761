// Package leb128 decodes and encodes the variable-length integers of the
// WebAssembly 1.0 (MVP) Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#integers%E2%91%A4
package leb128

import (
	"errors"
	"fmt"
	"io"
)

// ErrOverflow is returned when an encoding carries data bits beyond the
// declared bit width of the integer being decoded. Inspect with errors.Is.
var ErrOverflow = errors.New("integer overflow")

var (
	errOverflow32 = fmt.Errorf("%w: overflows a 32-bit integer", ErrOverflow)
	errOverflow33 = fmt.Errorf("%w: overflows a 33-bit integer", ErrOverflow)
	errOverflow64 = fmt.Errorf("%w: overflows a 64-bit integer", ErrOverflow)
)

// DecodeUint32 reads an unsigned 32-bit integer, returning the value and how
// many bytes were consumed.
//
// An encoding is rejected with ErrOverflow when it continues past five bytes
// or when a fifth byte sets bits above bit 31. Zero-padded encodings of
// in-range values, such as 0x80 0x00 for zero, are accepted: only data bits
// beyond the declared width are an error.
func DecodeUint32(r io.Reader) (ret uint32, bytesRead uint64, err error) {
	var b byte
	for shift := 0; shift < 35; shift += 7 {
		b, err = readByte(r)
		if err != nil {
			return 0, bytesRead, err
		}
		bytesRead++
		if shift == 28 && b&0xf0 != 0 {
			// Bits 32..34 of the value and the continuation bit all exceed
			// the width.
			return 0, bytesRead, errOverflow32
		}
		ret |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
	}
	return
}

// DecodeUint64 reads an unsigned 64-bit integer, returning the value and how
// many bytes were consumed. Width checking follows DecodeUint32.
func DecodeUint64(r io.Reader) (ret uint64, bytesRead uint64, err error) {
	var b byte
	for shift := 0; shift < 64; shift += 7 {
		b, err = readByte(r)
		if err != nil {
			return 0, bytesRead, err
		}
		bytesRead++
		if shift == 63 && b&0xfe != 0 {
			return 0, bytesRead, errOverflow64
		}
		ret |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
	}
	return
}

// DecodeInt32 reads a signed 32-bit integer, returning the value and how many
// bytes were consumed.
//
// If the terminating byte leaves the accumulated bit offset short of 32 and
// has bit 6 set, the result is sign-extended. A fifth byte whose spare bits
// are not a correct sign extension is rejected with ErrOverflow.
func DecodeInt32(r io.Reader) (ret int32, bytesRead uint64, err error) {
	var b byte
	var shift int
	for {
		b, err = readByte(r)
		if err != nil {
			return 0, bytesRead, err
		}
		bytesRead++
		ret |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		} else if bytesRead == 5 {
			return 0, bytesRead, errOverflow32
		}
	}

	if shift < 32 && b&0x40 != 0 {
		ret |= int32(-1) << shift
	}

	// On a full-length encoding, bits 4..6 of the final byte land beyond
	// bit 31 and must be a sign extension.
	if spare := b & 0x70; bytesRead == 5 {
		if ret < 0 && spare != 0x70 {
			return 0, bytesRead, errOverflow32
		} else if ret >= 0 && spare != 0 {
			return 0, bytesRead, errOverflow32
		}
	}
	return
}

// DecodeInt33AsInt64 reads a signed 33-bit integer into an int64, returning
// the value and how many bytes were consumed. The only 33-bit integer in the
// format is the type-index alternative of a block type.
func DecodeInt33AsInt64(r io.Reader) (ret int64, bytesRead uint64, err error) {
	var b byte
	var shift int
	for {
		b, err = readByte(r)
		if err != nil {
			return 0, bytesRead, err
		}
		bytesRead++
		ret |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		} else if bytesRead == 5 {
			return 0, bytesRead, errOverflow33
		}
	}

	if shift < 33 && b&0x40 != 0 {
		ret |= int64(-1) << shift
	}

	// Keep 33 bits, then reinterpret bit 32 as the sign.
	ret &= 1<<33 - 1
	if ret&(1<<32) != 0 {
		ret -= 1 << 33
	}

	// Bits 5 and 6 of a fifth byte land beyond bit 32 and must match the sign.
	if spare := b & 0x60; bytesRead == 5 {
		if ret < 0 && spare != 0x60 {
			return 0, bytesRead, errOverflow33
		} else if ret >= 0 && spare != 0 {
			return 0, bytesRead, errOverflow33
		}
	}
	return
}

// DecodeInt64 reads a signed 64-bit integer, returning the value and how many
// bytes were consumed. Width checking follows DecodeInt32.
func DecodeInt64(r io.Reader) (ret int64, bytesRead uint64, err error) {
	var b byte
	var shift int
	for {
		b, err = readByte(r)
		if err != nil {
			return 0, bytesRead, err
		}
		bytesRead++
		ret |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		} else if bytesRead == 10 {
			return 0, bytesRead, errOverflow64
		}
	}

	if shift < 64 && b&0x40 != 0 {
		ret |= int64(-1) << shift
	}

	// Bits 1..6 of a tenth byte land beyond bit 63 and must be a sign
	// extension.
	if spare := b & 0x7e; bytesRead == 10 {
		if ret < 0 && spare != 0x7e {
			return 0, bytesRead, errOverflow64
		} else if ret >= 0 && spare != 0 {
			return 0, bytesRead, errOverflow64
		}
	}
	return
}

// EncodeUint32 returns the minimal encoding of v.
func EncodeUint32(v uint32) []byte {
	return EncodeUint64(uint64(v))
}

// EncodeUint64 returns the minimal encoding of v.
func EncodeUint64(v uint64) (buf []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if v == 0 {
			return
		}
	}
}

// EncodeInt32 returns the minimal encoding of v.
func EncodeInt32(v int32) []byte {
	return EncodeInt64(int64(v))
}

// EncodeInt33AsInt64 returns the minimal encoding of v interpreted as a
// signed 33-bit integer.
func EncodeInt33AsInt64(v int64) []byte {
	return EncodeInt64(v)
}

// EncodeInt64 returns the minimal encoding of v.
func EncodeInt64(v int64) (buf []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7 // arithmetic shift, so negatives converge to -1
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	b := make([]byte, 1)
	_, err := io.ReadFull(r, b)
	return b[0], err
}
