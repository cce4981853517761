package binary

import (
	"github.com/wasmparse/wasmparse/wasm"
	"github.com/wasmparse/wasmparse/wasm/ieee754"
	"github.com/wasmparse/wasmparse/wasm/leb128"
)

// decodeConstantExpression decodes the initializer of a global or the offset
// of an element or data segment: exactly one constant instruction followed by
// the end opcode. Which constants are legal is fixed by the grammar; which of
// them type-check is a validation question and not asked here.
// See https://www.w3.org/TR/wasm-core-1/#binary-expr
func decodeConstantExpression(r *reader) (*wasm.ConstantExpression, error) {
	off := r.pos
	op, err := r.readByte()
	if err != nil {
		return nil, err
	}

	expr := &wasm.ConstantExpression{Opcode: op}
	switch op {
	case wasm.OpcodeI32Const:
		litOff := r.pos
		if expr.I32, _, err = leb128.DecodeInt32(r); err != nil {
			return nil, errAt(litOff, err)
		}
	case wasm.OpcodeI64Const:
		litOff := r.pos
		if expr.I64, _, err = leb128.DecodeInt64(r); err != nil {
			return nil, errAt(litOff, err)
		}
	case wasm.OpcodeF32Const:
		if expr.F32, err = ieee754.DecodeFloat32(r); err != nil {
			return nil, err
		}
	case wasm.OpcodeF64Const:
		if expr.F64, err = ieee754.DecodeFloat64(r); err != nil {
			return nil, err
		}
	case wasm.OpcodeGlobalGet:
		if expr.U32, err = r.uint32(); err != nil {
			return nil, err
		}
	default:
		return nil, failf(off, ErrInvalidByte, "%#x is not a constant instruction", op)
	}

	endOff := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if b != wasm.OpcodeEnd {
		return nil, failf(endOff, ErrInvalidByte, "constant expression not terminated with end")
	}
	return expr, nil
}
