package wasm

// Module is the decoded form of a WebAssembly 1.0 (MVP) binary module. Fields
// hold at most one section per known SectionID; a nil or empty field means the
// corresponding section was absent.
//
// All fields are read-only once decoding returns. CustomSections may retain
// views into the input buffer; see CustomSection.
//
// See https://www.w3.org/TR/wasm-core-1/#modules%E2%91%A8
type Module struct {
	TypeSection     []*FunctionType
	ImportSection   []*Import
	FunctionSection []Index
	TableSection    []*TableType
	MemorySection   []*MemoryType
	GlobalSection   []*Global
	ExportSection   []*Export
	StartSection    *Index
	ElementSection  []*ElementSegment
	CodeSection     []*Code
	DataSection     []*DataSegment

	// CustomSections hold every custom (ID zero) section in the order
	// encountered. Repeats are legal and any position between other sections
	// is legal.
	CustomSections []*CustomSection
}

// Import is an entry of the import section, described by its Kind.
// Exactly one Desc field is set, selected by Kind.
// See https://www.w3.org/TR/wasm-core-1/#binary-import
type Import struct {
	Module string
	Name   string
	Kind   ImportKind

	DescFunc   Index // Kind == ImportKindFunc: index into the type section
	DescTable  *TableType
	DescMem    *MemoryType
	DescGlobal *GlobalType
}

// Export is an entry of the export section.
// See https://www.w3.org/TR/wasm-core-1/#binary-export
type Export struct {
	Name string
	Kind ExportKind
	// Index is into the index space corresponding to Kind, e.g. the function
	// index space when Kind == ExportKindFunc.
	Index Index
}

// Global is an entry of the global section: a type paired with its constant
// initializer.
// See https://www.w3.org/TR/wasm-core-1/#binary-global
type Global struct {
	Type *GlobalType
	Init *ConstantExpression
}

// ElementSegment initializes a range of a table from a vector of function
// indices, at an offset computed by a constant expression.
// See https://www.w3.org/TR/wasm-core-1/#binary-elem
type ElementSegment struct {
	TableIndex Index
	Offset     *ConstantExpression
	Init       []Index
}

// DataSegment initializes a range of a memory with static bytes, at an offset
// computed by a constant expression. Data is an independent copy, not a view
// into the input buffer.
// See https://www.w3.org/TR/wasm-core-1/#binary-data
type DataSegment struct {
	MemoryIndex Index
	Offset      *ConstantExpression
	Data        []byte
}

// Code is an entry of the code section: a function's local declarations and
// its decoded body.
// See https://www.w3.org/TR/wasm-core-1/#binary-code
type Code struct {
	// LocalTypes are the function's locals flattened in declaration order,
	// excluding parameters. Run-length encoded declarations are expanded, so
	// (2, i32) becomes two ValueTypeI32 entries.
	LocalTypes []ValueType

	// Body is the function body with the terminating end opcode consumed and
	// excluded.
	Body []Instruction
}

// CustomSection is a named section the decoder does not interpret.
//
// Data aliases the input buffer rather than copying it, so the input must
// outlive the Module if any custom sections are retained. Use
// binary.DecodeNameSection to interpret the standard "name" section.
// See https://www.w3.org/TR/wasm-core-1/#custom-section%E2%91%A0
type CustomSection struct {
	Name string
	Data []byte
}

// NameSection represent the known subsections of the "name" custom section.
// See https://www.w3.org/TR/wasm-core-1/#binary-namesec
type NameSection struct {
	// ModuleName is the name of the module, possibly empty.
	ModuleName string

	// FunctionNames maps function indices to names, sorted by index.
	FunctionNames NameMap

	// LocalNames maps function indices to a map of local indices to names,
	// sorted by function then local index.
	LocalNames IndirectNameMap
}

// NameAssoc associates an index with a name.
type NameAssoc struct {
	Index Index
	Name  string
}

// NameMap is a list of NameAssoc sorted by index.
// See https://www.w3.org/TR/wasm-core-1/#binary-namemap
type NameMap []*NameAssoc

// NameMapAssoc associates an index with a NameMap.
type NameMapAssoc struct {
	Index   Index
	NameMap NameMap
}

// IndirectNameMap is a list of NameMapAssoc sorted by index.
// See https://www.w3.org/TR/wasm-core-1/#binary-indirectnamemap
type IndirectNameMap []*NameMapAssoc
