package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

// decodeElementSegment returns the wasm.ElementSegment decoded with the
// WebAssembly 1.0 (MVP) Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#binary-elem
func decodeElementSegment(r *reader) (*wasm.ElementSegment, error) {
	ti, err := r.uint32()
	if err != nil {
		return nil, fmt.Errorf("read table index: %w", err)
	}

	expr, err := decodeConstantExpression(r)
	if err != nil {
		return nil, fmt.Errorf("read expr for offset: %w", err)
	}

	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("read size of vector: %w", err)
	}

	init := make([]wasm.Index, num)
	for i := range init {
		if init[i], err = r.uint32(); err != nil {
			return nil, fmt.Errorf("read function index: %w", err)
		}
	}

	return &wasm.ElementSegment{TableIndex: ti, Offset: expr, Init: init}, nil
}
