package binary

import (
	"github.com/wasmparse/wasmparse/wasm"
	"github.com/wasmparse/wasmparse/wasm/leb128"
)

// decodeFunctionType returns the wasm.FunctionType decoded with the
// WebAssembly 1.0 (MVP) Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#binary-functype
func decodeFunctionType(r *reader) (*wasm.FunctionType, error) {
	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if b != 0x60 {
		return nil, failf(off, ErrInvalidByte, "%#x != 0x60 for function type", b)
	}

	params, err := decodeResultType(r)
	if err != nil {
		return nil, err
	}

	results, err := decodeResultType(r)
	if err != nil {
		return nil, err
	}

	return &wasm.FunctionType{Params: params, Results: results}, nil
}

// decodeLimits returns the wasm.Limits decoded with the WebAssembly 1.0 (MVP)
// Binary Format. Tag 0x00 has only a minimum; tag 0x01 adds a maximum.
// See https://www.w3.org/TR/wasm-core-1/#binary-limits
func decodeLimits(r *reader) (*wasm.Limits, error) {
	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}

	ret := &wasm.Limits{}
	switch b {
	case 0x00:
		if ret.Min, err = r.uint32(); err != nil {
			return nil, err
		}
	case 0x01:
		if ret.Min, err = r.uint32(); err != nil {
			return nil, err
		}
		m, err := r.uint32()
		if err != nil {
			return nil, err
		}
		ret.Max = &m
	default:
		return nil, failf(off, ErrInvalidByte, "%#x != 0x00 or 0x01 for limits", b)
	}
	return ret, nil
}

func decodeMemoryType(r *reader) (*wasm.MemoryType, error) {
	return decodeLimits(r)
}

// decodeTableType returns the wasm.TableType decoded with the WebAssembly 1.0
// (MVP) Binary Format. funcref is the only element type the format defines.
// See https://www.w3.org/TR/wasm-core-1/#binary-tabletype
func decodeTableType(r *reader) (*wasm.TableType, error) {
	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if b != wasm.ElemTypeFuncref {
		return nil, failf(off, ErrInvalidByte, "invalid element type %#x != funcref(%#x)", b, wasm.ElemTypeFuncref)
	}

	limits, err := decodeLimits(r)
	if err != nil {
		return nil, err
	}
	return &wasm.TableType{ElemType: b, Limits: limits}, nil
}

// decodeGlobalType returns the wasm.GlobalType decoded with the WebAssembly
// 1.0 (MVP) Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#binary-globaltype
func decodeGlobalType(r *reader) (*wasm.GlobalType, error) {
	vt, err := decodeValueType(r)
	if err != nil {
		return nil, err
	}

	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}

	ret := &wasm.GlobalType{ValType: vt}
	switch b {
	case wasm.MutabilityConst:
	case wasm.MutabilityVar:
		ret.Mutable = true
	default:
		return nil, failf(off, ErrInvalidByte, "%#x != const(0x00) or var(0x01) for mutability", b)
	}
	return ret, nil
}

// decodeBlockType returns the wasm.BlockType decoded with the WebAssembly 1.0
// (MVP) Binary Format. The three alternatives are distinguished by the leading
// byte: 0x40 for empty, a value type for an inline result, anything else a
// signed 33-bit type index.
// See https://www.w3.org/TR/wasm-core-1/#binary-blocktype
func decodeBlockType(r *reader) (*wasm.BlockType, error) {
	off := r.pos
	b, err := r.peekByte()
	if err != nil {
		return nil, err
	}

	switch b {
	case 0x40:
		r.pos++
		return &wasm.BlockType{Kind: wasm.BlockTypeKindEmpty}, nil
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		r.pos++
		return &wasm.BlockType{Kind: wasm.BlockTypeKindValueType, ValType: b}, nil
	default:
		idx, _, err := leb128.DecodeInt33AsInt64(r)
		if err != nil {
			return nil, errAt(off, err)
		}
		if idx < 0 {
			return nil, failf(off, ErrInvalidByte, "negative type index %d for block type", idx)
		}
		return &wasm.BlockType{Kind: wasm.BlockTypeKindTypeIndex, TypeIndex: uint32(idx)}, nil
	}
}
