package binary

import (
	"fmt"
	"math"

	"github.com/wasmparse/wasmparse/wasm"
)

// decodeCode decodes one code section entry: a declared byte size, local
// declarations, then the function body. The locals and body must consume
// exactly the declared size; the same accounting invariant as section framing,
// one level down.
// See https://www.w3.org/TR/wasm-core-1/#binary-code
func decodeCode(r *reader, maxDepth uint32) (*wasm.Code, error) {
	size, err := r.uint32()
	if err != nil {
		return nil, err
	}
	start := r.pos

	// Locals are run-length encoded as (count, type) pairs.
	declCount, err := r.vectorLen()
	if err != nil {
		return nil, err
	}

	var counts []uint64
	var types []wasm.ValueType
	var sum uint64
	for i := uint32(0); i < declCount; i++ {
		n, err := r.uint32()
		if err != nil {
			return nil, err
		}
		sum += uint64(n)
		counts = append(counts, uint64(n))

		vt, err := decodeValueType(r)
		if err != nil {
			return nil, err
		}
		types = append(types, vt)
	}

	// The local index space is 32-bit, so the expansion must fit it. Checked
	// before allocating: the counts are attacker-controlled.
	if sum > math.MaxUint32 {
		return nil, errAt(start, fmt.Errorf("too many locals: %d", sum))
	}

	var localTypes []wasm.ValueType
	if sum > 0 {
		localTypes = make([]wasm.ValueType, 0, sum)
		for i, num := range counts {
			for j := uint64(0); j < num; j++ {
				localTypes = append(localTypes, types[i])
			}
		}
	}

	body, err := decodeExpression(r, maxDepth)
	if err != nil {
		return nil, err
	}

	if consumed := r.pos - start; uint64(consumed) != uint64(size) {
		return nil, failf(r.pos, ErrSectionSizeMismatch, "code entry declared %d bytes but decoding consumed %d", size, consumed)
	}

	return &wasm.Code{LocalTypes: localTypes, Body: body}, nil
}
