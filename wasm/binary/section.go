package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

func decodeTypeSection(r *reader) ([]*wasm.FunctionType, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.FunctionType, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeFunctionType(r); err != nil {
			return nil, fmt.Errorf("read %d-th type: %w", i, err)
		}
	}
	return result, nil
}

func decodeImportSection(r *reader) ([]*wasm.Import, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.Import, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeImport(r); err != nil {
			return nil, fmt.Errorf("read import[%d]: %w", i, err)
		}
	}
	return result, nil
}

func decodeFunctionSection(r *reader) ([]wasm.Index, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]wasm.Index, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = r.uint32(); err != nil {
			return nil, fmt.Errorf("get type index: %w", err)
		}
	}
	return result, nil
}

func decodeTableSection(r *reader) ([]*wasm.TableType, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.TableType, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeTableType(r); err != nil {
			return nil, fmt.Errorf("read table type: %w", err)
		}
	}
	return result, nil
}

func decodeMemorySection(r *reader) ([]*wasm.MemoryType, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.MemoryType, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeMemoryType(r); err != nil {
			return nil, fmt.Errorf("read memory type: %w", err)
		}
	}
	return result, nil
}

func decodeGlobalSection(r *reader) ([]*wasm.Global, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.Global, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeGlobal(r); err != nil {
			return nil, fmt.Errorf("read global[%d]: %w", i, err)
		}
	}
	return result, nil
}

// decodeExportSection keeps exports in declaration order. Duplicate export
// names are a grammar-level error in the format, unlike most name constraints
// which belong to validation.
func decodeExportSection(r *reader) ([]*wasm.Export, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	seen := make(map[string]struct{}, num)
	result := make([]*wasm.Export, num)
	for i := uint32(0); i < num; i++ {
		export, err := decodeExport(r)
		if err != nil {
			return nil, fmt.Errorf("read export[%d]: %w", i, err)
		}
		if _, ok := seen[export.Name]; ok {
			return nil, fmt.Errorf("export[%d] duplicates name %q", i, export.Name)
		}
		seen[export.Name] = struct{}{}
		result[i] = export
	}
	return result, nil
}

func decodeStartSection(r *reader) (*wasm.Index, error) {
	fi, err := r.uint32()
	if err != nil {
		return nil, fmt.Errorf("read start function index: %w", err)
	}
	return &fi, nil
}

func decodeElementSection(r *reader) ([]*wasm.ElementSegment, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.ElementSegment, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeElementSegment(r); err != nil {
			return nil, fmt.Errorf("read element[%d]: %w", i, err)
		}
	}
	return result, nil
}

func decodeCodeSection(r *reader, maxDepth uint32) ([]*wasm.Code, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.Code, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeCode(r, maxDepth); err != nil {
			return nil, fmt.Errorf("read %d-th code segment: %w", i, err)
		}
	}
	return result, nil
}

func decodeDataSection(r *reader) ([]*wasm.DataSegment, error) {
	num, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	result := make([]*wasm.DataSegment, num)
	for i := uint32(0); i < num; i++ {
		if result[i], err = decodeDataSegment(r); err != nil {
			return nil, fmt.Errorf("read data segment[%d]: %w", i, err)
		}
	}
	return result, nil
}

// decodeCustomSection decodes a custom section's name, then keeps whatever of
// the declared size the name didn't consume as an uninterpreted view into the
// input. The payload's length is derived from the section size, so a name
// longer than the section is a framing error here rather than at the section
// boundary check.
// See https://www.w3.org/TR/wasm-core-1/#custom-section%E2%91%A0
func decodeCustomSection(r *reader, size uint32) (*wasm.CustomSection, error) {
	start := r.pos
	name, err := decodeUTF8(r, "custom section name")
	if err != nil {
		return nil, err
	}

	nameLen := uint64(r.pos - start)
	if nameLen > uint64(size) {
		return nil, failf(r.pos, ErrSectionSizeMismatch, "custom section name consumed %d of %d declared bytes", nameLen, size)
	}

	data, err := r.readBytes(int(uint64(size) - nameLen))
	if err != nil {
		return nil, err
	}
	return &wasm.CustomSection{Name: name, Data: data}, nil
}
