package binary

import (
	"fmt"

	"github.com/wasmparse/wasmparse/wasm"
)

const (
	// subsectionIDModuleName contains only the module name.
	subsectionIDModuleName = uint8(0)
	// subsectionIDFunctionNames is a map of indices to function names, in ascending order by function index
	subsectionIDFunctionNames = uint8(1)
	// subsectionIDLocalNames contain a map of function indices to a map of local indices to their names, in ascending
	// order by function and local index
	subsectionIDLocalNames = uint8(2)
)

// DecodeNameSection interprets data as the payload of the standard "name"
// custom section:
//
//   - ModuleName decodes from subsection 0
//   - FunctionNames decodes from subsection 1
//   - LocalNames decodes from subsection 2
//
// Unknown subsection IDs are skipped by their declared size. data is
// typically the CustomSection.Data of a section named "name"; decoding a
// module never does this implicitly, as a malformed name section should not
// fail the module it annotates.
//
// See https://www.w3.org/TR/wasm-core-1/#binary-namesec
func DecodeNameSection(data []byte) (*wasm.NameSection, error) {
	r := &reader{buf: data}
	result := &wasm.NameSection{}

	var err error
	for r.remaining() > 0 {
		subsectionID, _ := r.readByte()

		var subsectionSize uint32
		if subsectionSize, err = r.uint32(); err != nil {
			return nil, fmt.Errorf("get size of subsection[%d]: %w", subsectionID, err)
		}

		switch subsectionID {
		case subsectionIDModuleName:
			if result.ModuleName, err = decodeUTF8(r, "module name"); err != nil {
				return nil, err
			}
		case subsectionIDFunctionNames:
			if result.FunctionNames, err = decodeFunctionNames(r); err != nil {
				return nil, err
			}
		case subsectionIDLocalNames:
			if result.LocalNames, err = decodeLocalNames(r); err != nil {
				return nil, err
			}
		default: // Skip unknown subsections so that tool-specific ones don't fail decoding.
			if _, err = r.readBytes(int(subsectionSize)); err != nil {
				return nil, fmt.Errorf("skip subsection[%d]: %w", subsectionID, err)
			}
		}
	}
	return result, nil
}

func decodeFunctionNames(r *reader) (wasm.NameMap, error) {
	count, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get function name count: %w", err)
	}

	result := make(wasm.NameMap, 0, count)
	for i := uint32(0); i < count; i++ {
		functionIndex, err := r.uint32()
		if err != nil {
			return nil, fmt.Errorf("get index of function name[%d]: %w", i, err)
		}

		name, err := decodeUTF8(r, fmt.Sprintf("function[%d] name", functionIndex))
		if err != nil {
			return nil, err
		}
		result = append(result, &wasm.NameAssoc{Index: functionIndex, Name: name})
	}
	return result, nil
}

func decodeLocalNames(r *reader) (wasm.IndirectNameMap, error) {
	funcCount, err := r.vectorLen()
	if err != nil {
		return nil, fmt.Errorf("get function count of local names: %w", err)
	}

	result := make(wasm.IndirectNameMap, 0, funcCount)
	for i := uint32(0); i < funcCount; i++ {
		functionIndex, err := r.uint32()
		if err != nil {
			return nil, fmt.Errorf("get function index of local names[%d]: %w", i, err)
		}

		localCount, err := r.vectorLen()
		if err != nil {
			return nil, fmt.Errorf("get local name count of function[%d]: %w", functionIndex, err)
		}

		locals := make(wasm.NameMap, 0, localCount)
		for j := uint32(0); j < localCount; j++ {
			localIndex, err := r.uint32()
			if err != nil {
				return nil, fmt.Errorf("get index of local name[%d] of function[%d]: %w", j, functionIndex, err)
			}

			name, err := decodeUTF8(r, fmt.Sprintf("function[%d] local[%d] name", functionIndex, localIndex))
			if err != nil {
				return nil, err
			}
			locals = append(locals, &wasm.NameAssoc{Index: localIndex, Name: name})
		}
		result = append(result, &wasm.NameMapAssoc{Index: functionIndex, NameMap: locals})
	}
	return result, nil
}
