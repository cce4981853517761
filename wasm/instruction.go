package wasm

// Instruction is one decoded instruction, including any nested bodies of
// structured control instructions. It is a union: Opcode selects which operand
// fields are meaningful, and all others hold their zero value.
//
// Operand fields by opcode:
//
//	Block, Loop              BlockType, Body
//	If                       BlockType, Body (consequent), Else (alternative)
//	Br, BrIf                 U32 (label index)
//	BrTable                  Labels (targets), U32 (default label)
//	Call                     U32 (function index)
//	CallIndirect             U32 (type index)
//	LocalGet/Set/Tee         U32 (local index)
//	GlobalGet/Set            U32 (global index)
//	loads and stores         MemArg
//	I32Const .. F64Const     I32 / I64 / F32 / F64
//	MiscPrefix               Misc (second opcode byte)
//
// Everything else carries no operand and is identified by Opcode alone.
type Instruction struct {
	Opcode Opcode

	// Misc is the selector byte of a two-byte instruction, valid when Opcode
	// is OpcodeMiscPrefix.
	Misc MiscOpcode

	// BlockType is the signature of a block, loop or if.
	BlockType *BlockType

	// Body holds the instructions of a block or loop, or the consequent of an
	// if, up to but excluding the terminating end or else opcode.
	Body []Instruction

	// Else holds the alternative of an if. It is empty both for an if without
	// an else marker and for an if whose alternative is present but empty.
	Else []Instruction

	// U32 is a single index operand, or the default label of br_table.
	U32 uint32

	// Labels are the jump targets of br_table, excluding the default.
	Labels []uint32

	// MemArg accompanies every load and store.
	MemArg *MemArg

	I32 int32
	I64 int64
	F32 float32
	F64 float64
}

// Name returns the text-format name of the instruction.
func (i *Instruction) Name() string {
	if i.Opcode == OpcodeMiscPrefix {
		return MiscInstructionName(i.Misc)
	}
	return InstructionName(i.Opcode)
}

// MemArg is the memory immediate of a load or store: an alignment hint
// (encoded as its base-two logarithm) and a static byte offset added to the
// dynamic address operand.
// See https://www.w3.org/TR/wasm-core-1/#binary-memarg
type MemArg struct {
	Align  uint32
	Offset uint32
}

// ConstantExpression is the single-instruction initializer used by the
// global, element and data sections: one i32.const, i64.const, f32.const,
// f64.const or global.get, with the terminating end opcode consumed during
// decoding.
// See https://www.w3.org/TR/wasm-core-1/#binary-expr
type ConstantExpression = Instruction
