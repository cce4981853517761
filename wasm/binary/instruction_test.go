package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmparse/wasmparse/wasm"
)

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected wasm.Instruction
	}{
		{
			name:     "nop",
			input:    []byte{0x01},
			expected: wasm.Instruction{Opcode: wasm.OpcodeNop},
		},
		{
			name:     "i32.const 5",
			input:    []byte{0x41, 0x05},
			expected: wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32: 5},
		},
		{
			name:     "i32.const -1",
			input:    []byte{0x41, 0x7f},
			expected: wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32: -1},
		},
		{
			name:     "i64.const -123456",
			input:    []byte{0x42, 0xc0, 0xbb, 0x78},
			expected: wasm.Instruction{Opcode: wasm.OpcodeI64Const, I64: -123456},
		},
		{
			name:     "f32.const 1.0",
			input:    []byte{0x43, 0x00, 0x00, 0x80, 0x3f},
			expected: wasm.Instruction{Opcode: wasm.OpcodeF32Const, F32: 1.0},
		},
		{
			name:     "f64.const 1.0",
			input:    []byte{0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f},
			expected: wasm.Instruction{Opcode: wasm.OpcodeF64Const, F64: 1.0},
		},
		{
			name:     "local.get 2",
			input:    []byte{0x20, 0x02},
			expected: wasm.Instruction{Opcode: wasm.OpcodeLocalGet, U32: 2},
		},
		{
			name:     "call 10",
			input:    []byte{0x10, 0x0a},
			expected: wasm.Instruction{Opcode: wasm.OpcodeCall, U32: 10},
		},
		{
			name:  "call_indirect with reserved zero",
			input: []byte{0x11, 0x03, 0x00},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeCallIndirect,
				U32:    3,
			},
		},
		{
			name:  "i32.load with align and offset",
			input: []byte{0x28, 0x02, 0x08},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeI32Load,
				MemArg: &wasm.MemArg{Align: 2, Offset: 8},
			},
		},
		{
			name:  "i64.store32",
			input: []byte{0x3e, 0x00, 0x80, 0x01},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeI64Store32,
				MemArg: &wasm.MemArg{Align: 0, Offset: 128},
			},
		},
		{
			name:     "memory.size with reserved zero",
			input:    []byte{0x3f, 0x00},
			expected: wasm.Instruction{Opcode: wasm.OpcodeMemorySize},
		},
		{
			name:     "memory.grow with reserved zero",
			input:    []byte{0x40, 0x00},
			expected: wasm.Instruction{Opcode: wasm.OpcodeMemoryGrow},
		},
		{
			name:     "i32.add",
			input:    []byte{0x6a},
			expected: wasm.Instruction{Opcode: wasm.OpcodeI32Add},
		},
		{
			name:     "f64.reinterpret_i64",
			input:    []byte{0xbf},
			expected: wasm.Instruction{Opcode: wasm.OpcodeF64ReinterpretI64},
		},
		{
			name:  "br_table",
			input: []byte{0x0e, 0x02, 0x01, 0x02, 0x00},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeBrTable,
				Labels: []uint32{1, 2},
				U32:    0,
			},
		},
		{
			name:  "br_table no targets",
			input: []byte{0x0e, 0x00, 0x03},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeBrTable,
				U32:    3,
			},
		},
		{
			name:  "empty block",
			input: []byte{0x02, 0x40, 0x0b},
			expected: wasm.Instruction{
				Opcode:    wasm.OpcodeBlock,
				BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindEmpty},
			},
		},
		{
			name:  "block with i32 result",
			input: []byte{0x02, 0x7f, 0x41, 0x05, 0x0b},
			expected: wasm.Instruction{
				Opcode:    wasm.OpcodeBlock,
				BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindValueType, ValType: wasm.ValueTypeI32},
				Body:      []wasm.Instruction{{Opcode: wasm.OpcodeI32Const, I32: 5}},
			},
		},
		{
			name:  "loop",
			input: []byte{0x03, 0x40, 0x0c, 0x00, 0x0b},
			expected: wasm.Instruction{
				Opcode:    wasm.OpcodeLoop,
				BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindEmpty},
				Body:      []wasm.Instruction{{Opcode: wasm.OpcodeBr, U32: 0}},
			},
		},
		{
			name:  "if without else",
			input: []byte{0x04, 0x40, 0x01, 0x0b},
			expected: wasm.Instruction{
				Opcode:    wasm.OpcodeIf,
				BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindEmpty},
				Body:      []wasm.Instruction{{Opcode: wasm.OpcodeNop}},
			},
		},
		{
			name:  "if with else",
			input: []byte{0x04, 0x7f, 0x41, 0x01, 0x05, 0x41, 0x02, 0x0b},
			expected: wasm.Instruction{
				Opcode:    wasm.OpcodeIf,
				BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindValueType, ValType: wasm.ValueTypeI32},
				Body:      []wasm.Instruction{{Opcode: wasm.OpcodeI32Const, I32: 1}},
				Else:      []wasm.Instruction{{Opcode: wasm.OpcodeI32Const, I32: 2}},
			},
		},
		{
			name:  "nested blocks",
			input: []byte{0x02, 0x40, 0x02, 0x40, 0x01, 0x0b, 0x0b},
			expected: wasm.Instruction{
				Opcode:    wasm.OpcodeBlock,
				BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindEmpty},
				Body: []wasm.Instruction{{
					Opcode:    wasm.OpcodeBlock,
					BlockType: &wasm.BlockType{Kind: wasm.BlockTypeKindEmpty},
					Body:      []wasm.Instruction{{Opcode: wasm.OpcodeNop}},
				}},
			},
		},
		{
			name:  "i32.trunc_sat_f32_s",
			input: []byte{0xfc, 0x00},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeMiscPrefix,
				Misc:   wasm.MiscOpcodeI32TruncSatF32S,
			},
		},
		{
			name:  "i64.trunc_sat_f64_u",
			input: []byte{0xfc, 0x07},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeMiscPrefix,
				Misc:   wasm.MiscOpcodeI64TruncSatF64U,
			},
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			r := &reader{buf: tc.input}
			actual, err := decodeInstruction(r, 0, DefaultMaxNestingDepth)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, 0, r.remaining(), "should consume the whole input")
		})
	}
}

func TestDecodeInstruction_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		expectedErr error
		offset      int
	}{
		{name: "empty", input: []byte{}, expectedErr: ErrUnexpectedEnd, offset: 0},
		{name: "undefined opcode", input: []byte{0x06}, expectedErr: ErrUnknownOpcode, offset: 0},
		{name: "undefined opcode high", input: []byte{0xc0}, expectedErr: ErrUnknownOpcode, offset: 0},
		{name: "stray else", input: []byte{0x05}, expectedErr: ErrInvalidByte, offset: 0},
		{name: "stray end", input: []byte{0x0b}, expectedErr: ErrInvalidByte, offset: 0},
		{name: "undefined misc selector", input: []byte{0xfc, 0x08}, expectedErr: ErrUnknownOpcode, offset: 1},
		{name: "truncated misc prefix", input: []byte{0xfc}, expectedErr: ErrUnexpectedEnd, offset: 1},
		{name: "non-zero reserved byte after call_indirect", input: []byte{0x11, 0x00, 0x01}, expectedErr: ErrInvalidByte, offset: 2},
		{name: "non-zero reserved byte after memory.size", input: []byte{0x3f, 0x01}, expectedErr: ErrInvalidByte, offset: 1},
		{name: "truncated i32 literal", input: []byte{0x41}, expectedErr: ErrUnexpectedEnd, offset: 1},
		{name: "overflowing i32 literal", input: []byte{0x41, 0xff, 0xff, 0xff, 0xff, 0x0f}, expectedErr: ErrIntegerOverflow, offset: 1},
		{name: "truncated f32 literal", input: []byte{0x43, 0x00, 0x00}, expectedErr: ErrUnexpectedEnd, offset: 1},
		{name: "truncated memarg", input: []byte{0x28, 0x02}, expectedErr: ErrUnexpectedEnd, offset: 2},
		{name: "unterminated block", input: []byte{0x02, 0x40, 0x01}, expectedErr: ErrUnexpectedEnd, offset: 3},
		{name: "unknown opcode inside block", input: []byte{0x02, 0x40, 0x06, 0x0b}, expectedErr: ErrUnknownOpcode, offset: 2},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeInstruction(&reader{buf: tc.input}, 0, DefaultMaxNestingDepth)
			require.ErrorIs(t, err, tc.expectedErr)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			if tc.expectedErr != ErrUnexpectedEnd || tc.offset != 0 {
				require.Equal(t, tc.offset, de.Offset)
			}
		})
	}
}

func TestDecodeInstruction_NestingBound(t *testing.T) {
	// 4 nested blocks against a bound of 3: decoding the innermost fails.
	input := []byte{
		0x02, 0x40,
		0x02, 0x40,
		0x02, 0x40,
		0x02, 0x40,
		0x0b, 0x0b, 0x0b, 0x0b,
	}

	_, err := decodeInstruction(&reader{buf: input}, 0, 3)
	require.ErrorIs(t, err, ErrNestingTooDeep)

	_, err = decodeInstruction(&reader{buf: input}, 0, 4)
	require.NoError(t, err)
}

func TestDecodeExpression(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		body, err := decodeExpression(&reader{buf: []byte{0x0b}}, DefaultMaxNestingDepth)
		require.NoError(t, err)
		require.Nil(t, body)
	})

	t.Run("two instructions", func(t *testing.T) {
		body, err := decodeExpression(&reader{buf: []byte{0x41, 0x01, 0x1a, 0x0b}}, DefaultMaxNestingDepth)
		require.NoError(t, err)
		require.Equal(t, []wasm.Instruction{
			{Opcode: wasm.OpcodeI32Const, I32: 1},
			{Opcode: wasm.OpcodeDrop},
		}, body)
	})

	t.Run("missing end", func(t *testing.T) {
		_, err := decodeExpression(&reader{buf: []byte{0x41, 0x01}}, DefaultMaxNestingDepth)
		require.ErrorIs(t, err, ErrUnexpectedEnd)
	})

	t.Run("else without if", func(t *testing.T) {
		_, err := decodeExpression(&reader{buf: []byte{0x05, 0x0b}}, DefaultMaxNestingDepth)
		require.ErrorIs(t, err, ErrInvalidByte)
	})
}

func TestDecodeExpression_DeepNesting(t *testing.T) {
	// A pathological body: far more nested blocks than the default bound.
	// This must fail cleanly whatever the bound, not exhaust the stack.
	depth := DefaultMaxNestingDepth + 1
	input := make([]byte, 0, depth*3+1)
	for i := 0; i < depth; i++ {
		input = append(input, 0x02, 0x40)
	}
	for i := 0; i < depth; i++ {
		input = append(input, 0x0b)
	}
	input = append(input, 0x0b)

	_, err := decodeExpression(&reader{buf: input}, DefaultMaxNestingDepth)
	require.ErrorIs(t, err, ErrNestingTooDeep)
}
