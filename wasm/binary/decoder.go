// Package binary decodes the WebAssembly 1.0 (MVP) Binary Format into the
// structures of the wasm package.
//
// Decoding is a single pass over one in-memory buffer: no I/O, no validation
// against the typing rules, and no partial results. Any failure is returned
// as a *DecodeError wrapping one of this package's sentinel kinds.
// See https://www.w3.org/TR/wasm-core-1/#binary-format%E2%91%A0
package binary

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/wasmparse/wasmparse/wasm"
)

// magic is the 4 byte preamble (literally "\0asm") of the binary format.
// See https://www.w3.org/TR/wasm-core-1/#binary-magic
var magic = []byte{0x00, 0x61, 0x73, 0x6d}

// version is format version and doesn't change between known specification versions.
// See https://www.w3.org/TR/wasm-core-1/#binary-version
var version = []byte{0x01, 0x00, 0x00, 0x00}

// DefaultMaxNestingDepth bounds how deeply blocks may nest before decoding
// fails with ErrNestingTooDeep. Deep nesting is attacker-controlled input, so
// there must always be some bound; this one is far beyond what tools emit.
const DefaultMaxNestingDepth = 1000

// DecoderConfig controls decoding behavior, with defaults from
// NewDecoderConfig. Configs are immutable: each With method returns a copy.
type DecoderConfig struct {
	maxNestingDepth uint32
	logger          *zap.Logger
}

// NewDecoderConfig returns a config with DefaultMaxNestingDepth and no
// logging.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		maxNestingDepth: DefaultMaxNestingDepth,
		logger:          zap.NewNop(),
	}
}

func (c *DecoderConfig) clone() *DecoderConfig {
	return &DecoderConfig{
		maxNestingDepth: c.maxNestingDepth,
		logger:          c.logger,
	}
}

// WithMaxNestingDepth replaces the bound on control instruction nesting.
func (c *DecoderConfig) WithMaxNestingDepth(depth uint32) *DecoderConfig {
	ret := c.clone()
	ret.maxNestingDepth = depth
	return ret
}

// WithLogger sets a logger for debug-level decode tracing. A nil logger
// restores the default no-op one.
func (c *DecoderConfig) WithLogger(logger *zap.Logger) *DecoderConfig {
	if logger == nil {
		logger = zap.NewNop()
	}
	ret := c.clone()
	ret.logger = logger
	return ret
}

// DecodeModule decodes in with the defaults of NewDecoderConfig.
func DecodeModule(in []byte) (*wasm.Module, error) {
	return NewDecoderConfig().DecodeModule(in)
}

// DecodeModule decodes a complete module in the WebAssembly 1.0 (MVP) Binary
// Format: the magic/version preamble, then sections until the input is
// exhausted. Known sections must appear at most once each, in ascending ID
// order; custom sections may appear anywhere, any number of times.
//
// The result is independent of in except for custom section payloads, which
// alias it. On error, no module is returned: one broken length prefix makes
// every later offset meaningless, so there is nothing safe to resume from.
// See https://www.w3.org/TR/wasm-core-1/#binary-module
func (c *DecoderConfig) DecodeModule(in []byte) (*wasm.Module, error) {
	r := &reader{buf: in}

	buf, err := r.readBytes(4)
	if err != nil || !bytes.Equal(buf, magic) {
		return nil, &DecodeError{Offset: 0, Err: ErrInvalidMagicNumber}
	}

	if buf, err = r.readBytes(4); err != nil || !bytes.Equal(buf, version) {
		return nil, &DecodeError{Offset: 4, Err: ErrInvalidVersion}
	}

	m := &wasm.Module{}
	// lastSectionID is what every later known section ID must exceed.
	// Custom sections are ID zero and exempt, so zero works as the floor.
	var lastSectionID wasm.SectionID
	for r.remaining() > 0 {
		sectionOff := r.pos
		sectionID, err := r.readByte()
		if err != nil {
			return nil, err
		}

		sectionSize, err := r.uint32()
		if err != nil {
			return nil, fmt.Errorf("get size of section for id=%d: %w", sectionID, err)
		}

		if sectionID != wasm.SectionIDCustom {
			if sectionID > wasm.SectionIDData {
				return nil, failf(sectionOff, ErrInvalidSectionID, "%d", sectionID)
			}
			if sectionID <= lastSectionID {
				return nil, failf(sectionOff, ErrSectionOrder,
					"%s section cannot follow %s section",
					wasm.SectionIDName(sectionID), wasm.SectionIDName(lastSectionID))
			}
			lastSectionID = sectionID
		}

		contentStart := r.pos
		switch sectionID {
		case wasm.SectionIDCustom:
			var custom *wasm.CustomSection
			if custom, err = decodeCustomSection(r, sectionSize); err == nil {
				m.CustomSections = append(m.CustomSections, custom)
			}
		case wasm.SectionIDType:
			m.TypeSection, err = decodeTypeSection(r)
		case wasm.SectionIDImport:
			m.ImportSection, err = decodeImportSection(r)
		case wasm.SectionIDFunction:
			m.FunctionSection, err = decodeFunctionSection(r)
		case wasm.SectionIDTable:
			m.TableSection, err = decodeTableSection(r)
		case wasm.SectionIDMemory:
			m.MemorySection, err = decodeMemorySection(r)
		case wasm.SectionIDGlobal:
			m.GlobalSection, err = decodeGlobalSection(r)
		case wasm.SectionIDExport:
			m.ExportSection, err = decodeExportSection(r)
		case wasm.SectionIDStart:
			m.StartSection, err = decodeStartSection(r)
		case wasm.SectionIDElement:
			m.ElementSection, err = decodeElementSection(r)
		case wasm.SectionIDCode:
			m.CodeSection, err = decodeCodeSection(r, c.maxNestingDepth)
		case wasm.SectionIDData:
			m.DataSection, err = decodeDataSection(r)
		}

		if err == nil && uint64(contentStart)+uint64(sectionSize) != uint64(r.pos) {
			err = failf(r.pos, ErrSectionSizeMismatch,
				"section declared %d bytes but decoding consumed %d", sectionSize, r.pos-contentStart)
		}
		if err != nil {
			return nil, errAt(sectionOff, fmt.Errorf("section %s: %w", wasm.SectionIDName(sectionID), err))
		}

		c.logger.Debug("decoded section",
			zap.String("section", wasm.SectionIDName(sectionID)),
			zap.Uint8("id", sectionID),
			zap.Uint32("size", sectionSize),
			zap.Int("offset", sectionOff))
	}

	// Both sections describe the same functions, so disagreement means the
	// module as a whole is malformed even though each section parsed.
	if len(m.FunctionSection) != len(m.CodeSection) {
		return nil, fmt.Errorf("function and code section have inconsistent lengths: %d != %d",
			len(m.FunctionSection), len(m.CodeSection))
	}
	return m, nil
}
