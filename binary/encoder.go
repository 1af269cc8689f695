package binary

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/tlbx/compress"
	"go.jacobcolvin.com/tlbx/value"
)

// EncodeOptions controls [Encode].
type EncodeOptions struct {
	// Compress enables the per-section deflate policy (§4.5). Disabling
	// it writes every section uncompressed regardless of size.
	Compress bool
}

// DefaultEncodeOptions compresses eligible sections.
var DefaultEncodeOptions = EncodeOptions{Compress: true}

type pendingSection struct {
	key        string
	typeCode   typeCode
	schemaIdx  uint16
	itemCount  uint32
	raw        []byte
	final      []byte
	compressed bool
}

// Encode renders doc to its binary file form.
func Encode(doc *value.Document, opts EncodeOptions) ([]byte, error) {
	si := newStringInterner()

	schemaTableBody := encodeSchemaTable(si, doc)

	keys := doc.Keys()
	pending := make([]*pendingSection, len(keys))

	for i, key := range keys {
		si.intern(key)

		v, _ := doc.Section(key)

		tc, body, schemaIdx, itemCount := encodeSectionValue(si, doc, v)
		pending[i] = &pendingSection{key: key, typeCode: tc, schemaIdx: schemaIdx, itemCount: itemCount, raw: body}
	}

	stringTableBytes := si.encode()

	if opts.Compress {
		if err := compressSectionsConcurrently(pending); err != nil {
			return nil, err
		}
	} else {
		for _, p := range pending {
			p.final = p.raw
		}
	}

	sectionIndexOffset := uint64(HeaderSize) + uint64(len(stringTableBytes)) + uint64(len(schemaTableBody))
	dataRegionOffset := sectionIndexOffset + uint64(len(pending))*sectionIndexEntrySize

	indexBuf := make([]byte, 0, len(pending)*sectionIndexEntrySize)

	var dataRegion []byte

	anyCompressed := false

	cursor := dataRegionOffset

	for _, p := range pending {
		entry := make([]byte, sectionIndexEntrySize)
		appendLE32(entry[0:4], si.intern(p.key))
		appendLE64(entry[4:12], cursor)
		appendLE32(entry[12:16], uint32(len(p.final)))
		appendLE32(entry[16:20], uint32(len(p.raw)))
		appendLE16(entry[20:22], p.schemaIdx)
		entry[22] = byte(p.typeCode)

		var flags uint8
		if p.compressed {
			flags |= sectionFlagCompressed
			anyCompressed = true
		}

		if p.typeCode == tcArray || p.typeCode == tcStruct {
			flags |= sectionFlagIsArray
		}

		entry[23] = flags
		appendLE32(entry[24:28], p.itemCount)
		// entry[28:32] reserved

		indexBuf = append(indexBuf, entry...)
		dataRegion = append(dataRegion, p.final...)
		cursor += uint64(len(p.final))
	}

	var flags uint32
	if anyCompressed {
		flags |= flagCompressedAdvisory
	}

	if doc.RootArray() {
		flags |= flagRootArray
	}

	header := encodeHeader(fileHeader{
		flags:              flags,
		stringTableOffset:  HeaderSize,
		schemaTableOffset:  HeaderSize + uint64(len(stringTableBytes)),
		sectionIndexOffset: sectionIndexOffset,
		dataRegionOffset:   dataRegionOffset,
		stringCount:        uint32(len(si.order)),
		schemaCount:        uint32(len(doc.SchemaNames()) + len(doc.UnionNames())),
		sectionCount:       uint32(len(pending)),
	})

	out := make([]byte, 0, len(header)+len(stringTableBytes)+len(schemaTableBody)+len(indexBuf)+len(dataRegion))
	out = append(out, header...)
	out = append(out, stringTableBytes...)
	out = append(out, schemaTableBody...)
	out = append(out, indexBuf...)
	out = append(out, dataRegion...)

	return out, nil
}

// encodeSectionValue renders one top-level section, returning its type
// code, raw (uncompressed) body, the schema index it references (or
// noSchema), and its item count (meaningful for arrays and maps only).
func encodeSectionValue(si *stringInterner, doc *value.Document, v value.Value) (typeCode, []byte, uint16, uint32) {
	switch v.Kind() {
	case value.KindArray:
		items := v.Array()

		schemaIdx := uint16(noSchema)
		if schema, ok := matchingSchema(doc, items); ok {
			schemaIdx = uint16(si.intern(schema.Name))
		}

		code, body := encodeArrayBody(si, doc, items)

		return code, body, schemaIdx, uint32(len(items))
	case value.KindMap:
		return tcMap, encodeMapBody(si, doc, v.Map()), noSchema, uint32(len(v.Map()))
	case value.KindObject:
		return tcObject, encodeObjectBody(si, doc, v.Object()), noSchema, 0
	default:
		code, body := encodeTyped(si, doc, v)

		return code, body, noSchema, 0
	}
}

// compressSectionsConcurrently applies the per-section deflate policy to
// every pending section in parallel, since compression is the most
// expensive step of encoding and each section is independent.
func compressSectionsConcurrently(pending []*pendingSection) error {
	g, _ := errgroup.WithContext(context.Background())

	for _, p := range pending {
		p := p

		g.Go(func() error {
			out, used, err := compress.Encode(p.raw)
			if err != nil {
				return fmt.Errorf("binary: compressing section %q: %w", p.key, err)
			}

			p.final = out
			p.compressed = used

			return nil
		})
	}

	return g.Wait()
}

func appendLE32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

func appendLE64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func appendLE16(dst []byte, v uint16) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
}
