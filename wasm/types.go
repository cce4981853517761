package wasm

// ValueType is the binary encoding of a type such as i32.
// See https://www.w3.org/TR/wasm-core-1/#binary-valtype
//
// Note: This is a type alias as it is easier to encode and decode in the binary format.
type ValueType = byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

// ValueTypeName returns the type name of the given ValueType as a string.
// These type names match the names used in the WebAssembly text format.
//
// Note: ValueTypeName returns "unknown" for an undefined ValueType value.
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	}
	return "unknown"
}

// Index is the zero-based offset into one of the module's index spaces, e.g.
// a function index passed to the call instruction.
// See https://www.w3.org/TR/wasm-core-1/#binary-index
type Index = uint32

// FunctionType is the signature of a function: its parameter and result types
// in order.
// See https://www.w3.org/TR/wasm-core-1/#binary-functype
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

// Limits describe the size range of a table or memory. Max is nil when the
// encoding declared no upper bound.
//
// Note: Whether Max >= Min holds is a typing question, not a grammar one, so
// the decoder doesn't check it.
// See https://www.w3.org/TR/wasm-core-1/#binary-limits
type Limits struct {
	Min uint32
	Max *uint32
}

// MemoryType describes a memory: currently just its size limits.
// See https://www.w3.org/TR/wasm-core-1/#binary-memtype
type MemoryType = Limits

// ElemType is the binary encoding of a table's element type.
// See https://www.w3.org/TR/wasm-core-1/#binary-elemtype
type ElemType = byte

// ElemTypeFuncref is the only element type defined in WebAssembly 1.0 (MVP).
const ElemTypeFuncref ElemType = 0x70

// TableType describes a table: its element type and size limits.
// See https://www.w3.org/TR/wasm-core-1/#binary-tabletype
type TableType struct {
	ElemType ElemType
	Limits   *Limits
}

// Mutability is the binary encoding of whether a global can be reassigned.
// See https://www.w3.org/TR/wasm-core-1/#binary-mut
type Mutability = byte

const (
	MutabilityConst Mutability = 0x00
	MutabilityVar   Mutability = 0x01
)

// GlobalType describes a global: its value type and mutability.
// See https://www.w3.org/TR/wasm-core-1/#binary-globaltype
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// BlockTypeKind selects which BlockType field is meaningful.
type BlockTypeKind byte

const (
	// BlockTypeKindEmpty means the block produces no result.
	BlockTypeKindEmpty BlockTypeKind = iota
	// BlockTypeKindValueType means the block produces one inline result, BlockType.ValType.
	BlockTypeKindValueType
	// BlockTypeKindTypeIndex means the block's signature is TypeSection[BlockType.TypeIndex].
	BlockTypeKindTypeIndex
)

// BlockType is the signature of a structured control instruction, encoded
// either inline (empty or one value type) or as a reference into the type
// section.
// See https://www.w3.org/TR/wasm-core-1/#binary-blocktype
type BlockType struct {
	Kind      BlockTypeKind
	ValType   ValueType // valid when Kind == BlockTypeKindValueType
	TypeIndex Index     // valid when Kind == BlockTypeKindTypeIndex
}

// ImportKind indicates which import description is present.
// See https://www.w3.org/TR/wasm-core-1/#import-section%E2%91%A0
type ImportKind = byte

const (
	ImportKindFunc   ImportKind = 0x00
	ImportKindTable  ImportKind = 0x01
	ImportKindMemory ImportKind = 0x02
	ImportKindGlobal ImportKind = 0x03
)

// ExportKind indicates which index Export.Index points to.
// See https://www.w3.org/TR/wasm-core-1/#export-section%E2%91%A0
type ExportKind = byte

const (
	ExportKindFunc   ExportKind = 0x00
	ExportKindTable  ExportKind = 0x01
	ExportKindMemory ExportKind = 0x02
	ExportKindGlobal ExportKind = 0x03
)

// ExportKindName returns the canonical name of the exportdesc.
// See https://www.w3.org/TR/wasm-core-1/#syntax-exportdesc
func ExportKindName(ek ExportKind) string {
	switch ek {
	case ExportKindFunc:
		return "func"
	case ExportKindTable:
		return "table"
	case ExportKindMemory:
		return "mem"
	case ExportKindGlobal:
		return "global"
	}
	return "unknown"
}

// SectionID identifies a section of a Module in the WebAssembly 1.0 (MVP)
// Binary Format.
// See https://www.w3.org/TR/wasm-core-1/#sections%E2%91%A0
type SectionID = byte

const (
	// SectionIDCustom includes the standard defined NameSection and possibly others not defined in the standard.
	SectionIDCustom SectionID = iota // don't add anything not in https://www.w3.org/TR/wasm-core-1/#sections%E2%91%A0
	SectionIDType
	SectionIDImport
	SectionIDFunction
	SectionIDTable
	SectionIDMemory
	SectionIDGlobal
	SectionIDExport
	SectionIDStart
	SectionIDElement
	SectionIDCode
	SectionIDData
)

// SectionIDName returns the canonical name of a module section.
// See https://www.w3.org/TR/wasm-core-1/#sections%E2%91%A0
func SectionIDName(sectionID SectionID) string {
	switch sectionID {
	case SectionIDCustom:
		return "custom"
	case SectionIDType:
		return "type"
	case SectionIDImport:
		return "import"
	case SectionIDFunction:
		return "function"
	case SectionIDTable:
		return "table"
	case SectionIDMemory:
		return "memory"
	case SectionIDGlobal:
		return "global"
	case SectionIDExport:
		return "export"
	case SectionIDStart:
		return "start"
	case SectionIDElement:
		return "element"
	case SectionIDCode:
		return "code"
	case SectionIDData:
		return "data"
	}
	return "unknown"
}
