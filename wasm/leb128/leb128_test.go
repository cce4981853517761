package leb128

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeUint32(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint32
	}{
		{name: "zero", input: []byte{0x00}, expected: 0},
		{name: "zero padded", input: []byte{0x80, 0x00}, expected: 0},
		{name: "one byte", input: []byte{0x04}, expected: 4},
		{name: "two bytes", input: []byte{0x80, 0x7f}, expected: 16256},
		{name: "three bytes", input: []byte{0xe5, 0x8e, 0x26}, expected: 624485},
		{name: "four bytes", input: []byte{0x80, 0x80, 0x80, 0x4f}, expected: 165675008},
		{name: "max", input: []byte{0xff, 0xff, 0xff, 0xff, 0xf}, expected: math.MaxUint32},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, num, err := DecodeUint32(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, uint64(len(tc.input)), num)
		})
	}
}

func TestDecodeUint32_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "continuation into nothing", input: []byte{0x80}},
		{name: "spare bits set on 5th byte", input: []byte{0xff, 0xff, 0xff, 0xff, 0x10}},
		{name: "padded zero with 5 bytes", input: []byte{0x80, 0x80, 0x80, 0x80, 0x80}},
		{name: "6 byte encoding", input: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeUint32(bytes.NewReader(tc.input))
			require.Error(t, err)
		})
	}
}

func TestDecodeUint64(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint64
	}{
		{name: "zero", input: []byte{0x00}, expected: 0},
		{name: "one byte", input: []byte{0x04}, expected: 4},
		{name: "three bytes", input: []byte{0xe5, 0x8e, 0x26}, expected: 624485},
		{
			name:     "max",
			input:    []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x1},
			expected: math.MaxUint64,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, num, err := DecodeUint64(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, uint64(len(tc.input)), num)
		})
	}

	t.Run("spare bits set on 10th byte", func(t *testing.T) {
		_, _, err := DecodeUint64(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x2}))
		require.ErrorIs(t, err, ErrOverflow)
	})
}

func TestDecodeInt32(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int32
	}{
		{name: "zero", input: []byte{0x00}, expected: 0},
		{name: "one byte positive", input: []byte{0x13}, expected: 19},
		{name: "one byte negative", input: []byte{0x7f}, expected: -1},
		{name: "sign extension", input: []byte{0x40}, expected: -64},
		{name: "two bytes", input: []byte{0x81, 0x01}, expected: 129},
		{name: "three bytes negative", input: []byte{0xc0, 0xbb, 0x78}, expected: -123456},
		{name: "max", input: []byte{0xff, 0xff, 0xff, 0xff, 0x07}, expected: math.MaxInt32},
		{name: "min", input: []byte{0x80, 0x80, 0x80, 0x80, 0x78}, expected: math.MinInt32},
		{name: "padded negative one", input: []byte{0xff, 0xff, 0xff, 0xff, 0x7f}, expected: -1},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, num, err := DecodeInt32(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, uint64(len(tc.input)), num)
		})
	}
}

func TestDecodeInt32_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "continuation into nothing", input: []byte{0x80}},
		// -1 with the spare bits of the 5th byte cleared: not a sign extension.
		{name: "negative with zero spare bits", input: []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		// positive with spare bits set
		{name: "positive with spare bits", input: []byte{0x80, 0x80, 0x80, 0x80, 0x70}},
		{name: "6 byte encoding", input: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x7f}},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeInt32(bytes.NewReader(tc.input))
			require.Error(t, err)
		})
	}
}

func TestDecodeInt33AsInt64(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int64
	}{
		{name: "zero", input: []byte{0x00}, expected: 0},
		{name: "one byte positive", input: []byte{0x04}, expected: 4},
		{name: "negative one", input: []byte{0x7f}, expected: -1},
		{name: "sign extension", input: []byte{0x40}, expected: -64},
		{name: "two bytes negative", input: []byte{0x80, 0x7f}, expected: -128},
		{name: "max 33-bit", input: []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, expected: 1<<32 - 1},
		{name: "min 33-bit", input: []byte{0x80, 0x80, 0x80, 0x80, 0x70}, expected: -(1 << 32)},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, num, err := DecodeInt33AsInt64(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, uint64(len(tc.input)), num)
		})
	}

	t.Run("spare bits beyond 33", func(t *testing.T) {
		_, _, err := DecodeInt33AsInt64(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x2f}))
		require.ErrorIs(t, err, ErrOverflow)
	})
}

func TestDecodeInt64(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int64
	}{
		{name: "zero", input: []byte{0x00}, expected: 0},
		{name: "one byte positive", input: []byte{0x04}, expected: 4},
		{name: "one byte negative", input: []byte{0x7f}, expected: -1},
		{name: "three bytes negative", input: []byte{0xc0, 0xbb, 0x78}, expected: -123456},
		{
			name:     "min",
			input:    []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7f},
			expected: math.MinInt64,
		},
		{
			name:     "max",
			input:    []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00},
			expected: math.MaxInt64,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, num, err := DecodeInt64(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, uint64(len(tc.input)), num)
		})
	}

	t.Run("11 byte encoding", func(t *testing.T) {
		_, _, err := DecodeInt64(bytes.NewReader([]byte{
			0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7f,
		}))
		require.ErrorIs(t, err, ErrOverflow)
	})
}

func TestEncodeUint64_RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 624485, math.MaxUint32, math.MaxUint64} {
		encoded := EncodeUint64(v)
		decoded, num, err := DecodeUint64(bytes.NewReader(encoded))
		require.NoError(t, err, "%d", v)
		require.Equal(t, v, decoded)
		require.Equal(t, uint64(len(encoded)), num)
	}
}

func TestEncodeUint32_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 4, 16256, 624485, math.MaxUint32} {
		decoded, _, err := DecodeUint32(bytes.NewReader(EncodeUint32(v)))
		require.NoError(t, err, "%d", v)
		require.Equal(t, v, decoded)
	}
}

func TestEncodeInt32_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 63, 64, -64, -65, 129, -123456, math.MaxInt32, math.MinInt32} {
		decoded, _, err := DecodeInt32(bytes.NewReader(EncodeInt32(v)))
		require.NoError(t, err, "%d", v)
		require.Equal(t, v, decoded)
	}
}

func TestEncodeInt64_RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, -123456, math.MaxInt32, math.MinInt64, math.MaxInt64} {
		decoded, _, err := DecodeInt64(bytes.NewReader(EncodeInt64(v)))
		require.NoError(t, err, "%d", v)
		require.Equal(t, v, decoded)
	}
}

func TestEncodeInt33AsInt64_RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, -64, 1<<32 - 1, -(1 << 32)} {
		decoded, _, err := DecodeInt33AsInt64(bytes.NewReader(EncodeInt33AsInt64(v)))
		require.NoError(t, err, "%d", v)
		require.Equal(t, v, decoded)
	}
}
