package binary

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/tlbx/compress"
	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/value"
)

type sectionIndexEntry struct {
	keyIdx           uint32
	offset           uint64
	size             uint32
	uncompressedSize uint32
	schemaIdx        uint16
	typeCode         typeCode
	flags            uint8
	itemCount        uint32
}

func (e sectionIndexEntry) compressed() bool { return e.flags&sectionFlagCompressed != 0 }

// Reader provides random-access, lazily-decoding access to an encoded
// document: the header, string table, and schema table are parsed once
// at open time; a section's payload is only read and decoded the first
// time [Reader.Section] is called for its key, then cached.
type Reader struct {
	data []byte

	closer func() error

	header  fileHeader
	strs    stringTable
	schemas decodedSchemaTable
	index   []sectionIndexEntry
	byKey   map[string]int
	order   []string

	mu    sync.Mutex
	cache map[string]value.Value
}

// Open reads path fully into memory and decodes its header, string
// table, and schema table.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("binary: open %s: %w", path, errs.ErrIo)
	}

	return newReader(data, func() error { return nil })
}

func newReader(data []byte, closer func() error) (*Reader, error) {
	header, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	stEnd := header.schemaTableOffset
	if stEnd > uint64(len(data)) {
		return nil, fmt.Errorf("binary: schema table offset exceeds file size: %w", errs.ErrIo)
	}

	strs, err := decodeStringTable(data[header.stringTableOffset:])
	if err != nil {
		return nil, err
	}

	schemas, err := decodeSchemaTable(data[header.schemaTableOffset:], strs)
	if err != nil {
		return nil, err
	}

	index, byKey, order, err := decodeSectionIndex(data, header, strs)
	if err != nil {
		return nil, err
	}

	return &Reader{
		data:    data,
		closer:  closer,
		header:  header,
		strs:    strs,
		schemas: schemas,
		index:   index,
		byKey:   byKey,
		order:   order,
		cache:   make(map[string]value.Value),
	}, nil
}

func decodeSectionIndex(data []byte, header fileHeader, strs stringTable) ([]sectionIndexEntry, map[string]int, []string, error) {
	base := header.sectionIndexOffset
	need := uint64(header.sectionCount) * sectionIndexEntrySize

	if base+need > uint64(len(data)) {
		return nil, nil, nil, fmt.Errorf("binary: section index exceeds file size: %w", errs.ErrIo)
	}

	buf := data[base : base+need]

	entries := make([]sectionIndexEntry, header.sectionCount)
	byKey := make(map[string]int, header.sectionCount)
	order := make([]string, header.sectionCount)

	for i := 0; i < int(header.sectionCount); i++ {
		off := i * sectionIndexEntrySize
		e := buf[off : off+sectionIndexEntrySize]

		entry := sectionIndexEntry{
			keyIdx:           leUint32(e[0:4]),
			offset:           leUint64(e[4:12]),
			size:             leUint32(e[12:16]),
			uncompressedSize: leUint32(e[16:20]),
			schemaIdx:        leUint16(e[20:22]),
			typeCode:         typeCode(e[22]),
			flags:            e[23],
			itemCount:        leUint32(e[24:28]),
		}

		key, ok := strs.at(entry.keyIdx)
		if !ok {
			return nil, nil, nil, fmt.Errorf("binary: section %d key index out of range: %w", i, errs.ErrIo)
		}

		entries[i] = entry
		byKey[key] = i
		order[i] = key
	}

	return entries, byKey, order, nil
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func leUint16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}

	return v
}

// Close releases resources held by the Reader — a no-op for [Open],
// and an unmap for [OpenMmap].
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer()
}

// Keys returns the top-level section names in encode order.
func (r *Reader) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// RootArray reports the document-level root-array flag.
func (r *Reader) RootArray() bool { return r.header.rootArray() }

// SchemaNames returns all registered struct names in alphabetical order.
func (r *Reader) SchemaNames() []string {
	names := make([]string, 0, len(r.schemas.structs))
	for name := range r.schemas.structs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Schema returns the struct named name and whether it was found.
func (r *Reader) Schema(name string) (*value.Schema, bool) {
	s, ok := r.schemas.structs[name]

	return s, ok
}

// UnionNames returns all registered union names in alphabetical order.
func (r *Reader) UnionNames() []string {
	names := make([]string, 0, len(r.schemas.unions))
	for name := range r.schemas.unions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Union returns the union named name and whether it was found.
func (r *Reader) Union(name string) (*value.Union, bool) {
	u, ok := r.schemas.unions[name]

	return u, ok
}

// Section decodes and returns the section named key. Missing keys
// return the typed-missing sentinel [value.Null] with ok=false rather
// than an error; a malformed section (bad type code, truncated payload,
// corrupt deflate stream) still returns an error, since that signals a
// broken file rather than an absent key.
func (r *Reader) Section(key string) (value.Value, bool, error) {
	idx, ok := r.byKey[key]
	if !ok {
		return value.Null, false, nil
	}

	r.mu.Lock()
	if v, cached := r.cache[key]; cached {
		r.mu.Unlock()

		return v, true, nil
	}
	r.mu.Unlock()

	v, err := r.decodeSectionAt(idx)
	if err != nil {
		return value.Null, false, err
	}

	r.mu.Lock()
	r.cache[key] = v
	r.mu.Unlock()

	return v, true, nil
}

func (r *Reader) decodeSectionAt(idx int) (value.Value, error) {
	entry := r.index[idx]

	if uint64(entry.offset)+uint64(entry.size) > uint64(len(r.data)) {
		return value.Null, fmt.Errorf("binary: section %d payload exceeds file size: %w", idx, errs.ErrIo)
	}

	raw := r.data[entry.offset : entry.offset+uint64(entry.size)]

	body := raw

	if entry.compressed() {
		decompressed, err := compress.Decode(raw, int(entry.uncompressedSize))
		if err != nil {
			return value.Null, fmt.Errorf("binary: decompressing section %d: %w", idx, err)
		}

		body = decompressed
	}

	v, _, err := decodeTyped(entry.typeCode, body, r.strs, r.schemas)
	if err != nil {
		return value.Null, fmt.Errorf("binary: decoding section %d: %w", idx, err)
	}

	return v, nil
}

// Prefetch decodes and caches every section concurrently, so subsequent
// [Reader.Section] calls never block on I/O or decompression.
func (r *Reader) Prefetch(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)

	for i, key := range r.order {
		i, key := i, key

		g.Go(func() error {
			r.mu.Lock()
			_, cached := r.cache[key]
			r.mu.Unlock()

			if cached {
				return nil
			}

			v, err := r.decodeSectionAt(i)
			if err != nil {
				return err
			}

			r.mu.Lock()
			r.cache[key] = v
			r.mu.Unlock()

			return nil
		})
	}

	return g.Wait()
}
