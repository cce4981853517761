package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

// decodeExport returns the wasm.Export decoded with the WebAssembly 1.0 (MVP)
// Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#binary-export
func decodeExport(r *reader) (i *wasm.Export, err error) {
	i = &wasm.Export{}

	if i.Name, err = decodeUTF8(r, "export name"); err != nil {
		return nil, fmt.Errorf("export name: %w", err)
	}

	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}

	i.Kind = b
	switch i.Kind {
	case wasm.ExportKindFunc, wasm.ExportKindTable, wasm.ExportKindMemory, wasm.ExportKindGlobal:
		if i.Index, err = r.uint32(); err != nil {
			return nil, fmt.Errorf("export index: %w", err)
		}
	default:
		return nil, failf(off, ErrInvalidByte, "invalid exportdesc: %#x", b)
	}
	return
}
