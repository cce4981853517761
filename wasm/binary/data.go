package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

// decodeDataSegment returns the wasm.DataSegment decoded with the WebAssembly
// 1.0 (MVP) Binary Format. The segment bytes are copied so the result doesn't
// pin the input buffer.
// See https://www.w3.org/TR/wasm-core-1/#binary-data
func decodeDataSegment(r *reader) (*wasm.DataSegment, error) {
	mi, err := r.uint32()
	if err != nil {
		return nil, fmt.Errorf("read memory index: %w", err)
	}

	expr, err := decodeConstantExpression(r)
	if err != nil {
		return nil, fmt.Errorf("read expr for offset: %w", err)
	}

	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("read size of vector: %w", err)
	}

	view, err := r.readBytes(int(num))
	if err != nil {
		return nil, err
	}

	data := make([]byte, num)
	copy(data, view)
	return &wasm.DataSegment{MemoryIndex: mi, Offset: expr, Data: data}, nil
}
