package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

// decodeGlobal returns the wasm.Global decoded with the WebAssembly 1.0 (MVP)
// Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#binary-global
func decodeGlobal(r *reader) (*wasm.Global, error) {
	gt, err := decodeGlobalType(r)
	if err != nil {
		return nil, fmt.Errorf("read global type: %w", err)
	}

	init, err := decodeConstantExpression(r)
	if err != nil {
		return nil, fmt.Errorf("read init expression: %w", err)
	}

	return &wasm.Global{Type: gt, Init: init}, nil
}
