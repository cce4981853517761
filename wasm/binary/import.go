package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

// decodeImport returns the wasm.Import decoded with the WebAssembly 1.0 (MVP)
// Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#binary-import
func decodeImport(r *reader) (i *wasm.Import, err error) {
	i = &wasm.Import{}
	if i.Module, err = decodeUTF8(r, "import module"); err != nil {
		return nil, fmt.Errorf("import module: %w", err)
	}

	if i.Name, err = decodeUTF8(r, "import name"); err != nil {
		return nil, fmt.Errorf("import name: %w", err)
	}

	off := r.pos
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}

	i.Kind = b
	switch i.Kind {
	case wasm.ImportKindFunc:
		if i.DescFunc, err = r.uint32(); err != nil {
			return nil, fmt.Errorf("import func type index: %w", err)
		}
	case wasm.ImportKindTable:
		if i.DescTable, err = decodeTableType(r); err != nil {
			return nil, fmt.Errorf("import table desc: %w", err)
		}
	case wasm.ImportKindMemory:
		if i.DescMem, err = decodeMemoryType(r); err != nil {
			return nil, fmt.Errorf("import mem desc: %w", err)
		}
	case wasm.ImportKindGlobal:
		if i.DescGlobal, err = decodeGlobalType(r); err != nil {
			return nil, fmt.Errorf("import global desc: %w", err)
		}
	default:
		return nil, failf(off, ErrInvalidByte, "invalid importdesc: %#x", b)
	}
	return
}
