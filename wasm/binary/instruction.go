package binary

import (
	"github.com/wasmparse/wasmparse/wasm"
	"github.com/wasmparse/wasmparse/wasm/ieee754"
	"github.com/wasmparse/wasmparse/wasm/leb128"
)

// operandShape tells the dispatch loop what follows an opcode byte. One shape
// per operand family keeps the ~170-opcode space a data problem instead of a
// conditional chain, and adding an instruction family means adding a shape.
type operandShape byte

const (
	// operandShapeUnknown marks bytes the 1.0 format doesn't define. It must
	// be the zero value so unlisted table entries reject by default.
	operandShapeUnknown operandShape = iota
	operandShapeNone
	operandShapeBlock        // blocktype, then a body up to the end opcode
	operandShapeIfBlock      // blocktype, consequent, optional else and alternative
	operandShapeIndex        // one u32 immediate
	operandShapeBrTable      // label vector plus default label
	operandShapeCallIndirect // type index plus reserved zero byte
	operandShapeMemArg       // align and offset
	operandShapeReservedByte // reserved zero byte, no semantic operand
	operandShapeI32          // signed 32-bit varint literal
	operandShapeI64          // signed 64-bit varint literal
	operandShapeF32          // 4-byte little-endian literal
	operandShapeF64          // 8-byte little-endian literal
	operandShapeMiscPrefix   // second opcode byte
)

var operandShapes = [256]operandShape{
	wasm.OpcodeUnreachable:  operandShapeNone,
	wasm.OpcodeNop:          operandShapeNone,
	wasm.OpcodeBlock:        operandShapeBlock,
	wasm.OpcodeLoop:         operandShapeBlock,
	wasm.OpcodeIf:           operandShapeIfBlock,
	wasm.OpcodeBr:           operandShapeIndex,
	wasm.OpcodeBrIf:         operandShapeIndex,
	wasm.OpcodeBrTable:      operandShapeBrTable,
	wasm.OpcodeReturn:       operandShapeNone,
	wasm.OpcodeCall:         operandShapeIndex,
	wasm.OpcodeCallIndirect: operandShapeCallIndirect,

	wasm.OpcodeDrop:   operandShapeNone,
	wasm.OpcodeSelect: operandShapeNone,

	wasm.OpcodeLocalGet:  operandShapeIndex,
	wasm.OpcodeLocalSet:  operandShapeIndex,
	wasm.OpcodeLocalTee:  operandShapeIndex,
	wasm.OpcodeGlobalGet: operandShapeIndex,
	wasm.OpcodeGlobalSet: operandShapeIndex,

	wasm.OpcodeMemorySize: operandShapeReservedByte,
	wasm.OpcodeMemoryGrow: operandShapeReservedByte,

	wasm.OpcodeI32Const: operandShapeI32,
	wasm.OpcodeI64Const: operandShapeI64,
	wasm.OpcodeF32Const: operandShapeF32,
	wasm.OpcodeF64Const: operandShapeF64,

	wasm.OpcodeMiscPrefix: operandShapeMiscPrefix,
}

func init() {
	// Every load and store carries a memarg.
	for op := int(wasm.OpcodeI32Load); op <= int(wasm.OpcodeI64Store32); op++ {
		operandShapes[op] = operandShapeMemArg
	}
	// Comparisons, arithmetic and conversions (i32.eqz through
	// f64.reinterpret_i64) are distinguished by opcode identity alone.
	for op := int(wasm.OpcodeI32Eqz); op <= int(wasm.OpcodeF64ReinterpretI64); op++ {
		operandShapes[op] = operandShapeNone
	}
}

// decodeInstruction decodes one instruction including any nested bodies.
// depth counts enclosing structured instructions; once it reaches maxDepth,
// another block aborts the decode rather than the goroutine stack. Nesting is
// attacker-controlled, so this bound must hold for any input.
func decodeInstruction(r *reader, depth, maxDepth uint32) (wasm.Instruction, error) {
	off := r.pos
	op, err := r.readByte()
	if err != nil {
		return wasm.Instruction{}, err
	}

	i := wasm.Instruction{Opcode: op}
	switch op {
	// else and end are terminators consumed by decodeInstructionSequence;
	// reaching one here means it had no block to close.
	case wasm.OpcodeElse, wasm.OpcodeEnd:
		return i, failf(off, ErrInvalidByte, "%s outside any block", wasm.InstructionName(op))
	}

	switch operandShapes[op] {
	case operandShapeUnknown:
		return i, failf(off, ErrUnknownOpcode, "%#x", op)

	case operandShapeNone:

	case operandShapeBlock:
		if depth >= maxDepth {
			return i, failf(off, ErrNestingTooDeep, "%s exceeds depth %d", wasm.InstructionName(op), maxDepth)
		}
		if i.BlockType, err = decodeBlockType(r); err != nil {
			return i, err
		}
		if i.Body, _, err = decodeInstructionSequence(r, depth+1, maxDepth, false); err != nil {
			return i, err
		}

	case operandShapeIfBlock:
		if depth >= maxDepth {
			return i, failf(off, ErrNestingTooDeep, "if exceeds depth %d", maxDepth)
		}
		if i.BlockType, err = decodeBlockType(r); err != nil {
			return i, err
		}
		var term wasm.Opcode
		if i.Body, term, err = decodeInstructionSequence(r, depth+1, maxDepth, true); err != nil {
			return i, err
		}
		if term == wasm.OpcodeElse {
			if i.Else, _, err = decodeInstructionSequence(r, depth+1, maxDepth, false); err != nil {
				return i, err
			}
		}

	case operandShapeIndex:
		if i.U32, err = r.uint32(); err != nil {
			return i, err
		}

	case operandShapeBrTable:
		num, err := r.vectorLen()
		if err != nil {
			return i, err
		}
		if num > 0 {
			i.Labels = make([]uint32, num)
			for j := uint32(0); j < num; j++ {
				if i.Labels[j], err = r.uint32(); err != nil {
					return i, err
				}
			}
		}
		if i.U32, err = r.uint32(); err != nil { // default label
			return i, err
		}

	case operandShapeCallIndirect:
		if i.U32, err = r.uint32(); err != nil {
			return i, err
		}
		// The table index byte is reserved as zero in 1.0.
		tableOff := r.pos
		b, err := r.readByte()
		if err != nil {
			return i, err
		}
		if b != 0 {
			return i, failf(tableOff, ErrInvalidByte, "non-zero table index %#x for call_indirect", b)
		}

	case operandShapeMemArg:
		ma := &wasm.MemArg{}
		if ma.Align, err = r.uint32(); err != nil {
			return i, err
		}
		if ma.Offset, err = r.uint32(); err != nil {
			return i, err
		}
		i.MemArg = ma

	case operandShapeReservedByte:
		memOff := r.pos
		b, err := r.readByte()
		if err != nil {
			return i, err
		}
		if b != 0 {
			return i, failf(memOff, ErrInvalidByte, "non-zero reserved byte %#x for %s", b, wasm.InstructionName(op))
		}

	case operandShapeI32:
		litOff := r.pos
		if i.I32, _, err = leb128.DecodeInt32(r); err != nil {
			return i, errAt(litOff, err)
		}

	case operandShapeI64:
		litOff := r.pos
		if i.I64, _, err = leb128.DecodeInt64(r); err != nil {
			return i, errAt(litOff, err)
		}

	case operandShapeF32:
		if i.F32, err = ieee754.DecodeFloat32(r); err != nil {
			return i, err
		}

	case operandShapeF64:
		if i.F64, err = ieee754.DecodeFloat64(r); err != nil {
			return i, err
		}

	case operandShapeMiscPrefix:
		selOff := r.pos
		sel, err := r.readByte()
		if err != nil {
			return i, err
		}
		if sel > wasm.MiscOpcodeI64TruncSatF64U {
			return i, failf(selOff, ErrUnknownOpcode, "%#x after misc prefix", sel)
		}
		i.Misc = sel
	}
	return i, nil
}

// decodeInstructionSequence decodes instructions until it consumes a
// terminator: the end opcode, or additionally the else opcode when decoding an
// if's consequent. The terminator is consumed but excluded from the returned
// body, and returned so the caller can tell which alternative ended the
// sequence.
func decodeInstructionSequence(r *reader, depth, maxDepth uint32, allowElse bool) ([]wasm.Instruction, wasm.Opcode, error) {
	var body []wasm.Instruction
	for {
		b, err := r.peekByte()
		if err != nil {
			return nil, 0, err
		}
		if b == wasm.OpcodeEnd || (allowElse && b == wasm.OpcodeElse) {
			r.pos++
			return body, b, nil
		}

		i, err := decodeInstruction(r, depth, maxDepth)
		if err != nil {
			return nil, 0, err
		}
		body = append(body, i)
	}
}

// decodeExpression decodes a function body: an instruction sequence through
// its terminating end opcode.
// See https://www.w3.org/TR/wasm-core-1/#binary-expr
func decodeExpression(r *reader, maxDepth uint32) ([]wasm.Instruction, error) {
	body, _, err := decodeInstructionSequence(r, 0, maxDepth, false)
	return body, err
}
