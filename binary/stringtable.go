package binary

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"go.jacobcolvin.com/tlbx/errs"
)

// stringInterner collects every string that needs a table index, in
// first-seen order, deduplicating repeats.
type stringInterner struct {
	order []string
	index map[string]uint32
}

func newStringInterner() *stringInterner {
	return &stringInterner{index: make(map[string]uint32)}
}

// intern returns s's table index, assigning it the next free index on
// first occurrence.
func (si *stringInterner) intern(s string) uint32 {
	if idx, ok := si.index[s]; ok {
		return idx
	}

	idx := uint32(len(si.order))
	si.order = append(si.order, s)
	si.index[s] = idx

	return idx
}

// encode renders the string table: size u32, count u32, then (offset
// u32, length u32) per string, then the concatenated UTF-8 payload.
// Offsets are relative to the start of the payload, i.e. to the byte
// immediately following the last (offset, length) pair.
func (si *stringInterner) encode() []byte {
	indexSize := len(si.order) * 8

	payload := make([]byte, 0, indexSize)
	offsets := make([]byte, indexSize)

	var pos uint32

	for i, s := range si.order {
		binary.LittleEndian.PutUint32(offsets[i*8:i*8+4], pos)
		binary.LittleEndian.PutUint32(offsets[i*8+4:i*8+8], uint32(len(s)))

		payload = append(payload, s...)
		pos += uint32(len(s))
	}

	body := make([]byte, 0, 4+indexSize+len(payload))
	body = append(body, offsets...)
	body = append(body, payload...)

	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(body)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(si.order)))
	copy(out[8:], body)

	return out
}

// stringTable is the decoded, random-access view over an encoded string
// table: every string is copied out of the backing buffer once, when
// the table is decoded, so later lookups never allocate or copy.
type stringTable struct {
	strs []string
}

func decodeStringTable(buf []byte) (stringTable, error) {
	if len(buf) < 8 {
		return stringTable{}, fmt.Errorf("binary: truncated string table: %w", errs.ErrIo)
	}

	size := binary.LittleEndian.Uint32(buf[0:4])
	count := binary.LittleEndian.Uint32(buf[4:8])

	if uint64(8+size) > uint64(len(buf)) {
		return stringTable{}, fmt.Errorf("binary: string table size exceeds buffer: %w", errs.ErrIo)
	}

	body := buf[8 : 8+size]
	indexSize := int(count) * 8

	if indexSize > len(body) {
		return stringTable{}, fmt.Errorf("binary: string table index exceeds body: %w", errs.ErrIo)
	}

	payload := body[indexSize:]
	strs := make([]string, count)

	for i := uint32(0); i < count; i++ {
		off := binary.LittleEndian.Uint32(body[i*8 : i*8+4])
		length := binary.LittleEndian.Uint32(body[i*8+4 : i*8+8])

		if uint64(off)+uint64(length) > uint64(len(payload)) {
			return stringTable{}, fmt.Errorf("binary: string %d out of bounds: %w", i, errs.ErrIo)
		}

		s := payload[off : off+length]
		if !utf8.Valid(s) {
			return stringTable{}, fmt.Errorf("binary: string %d is not valid utf-8: %w", i, errs.ErrInvalidUtf8)
		}

		strs[i] = string(s)
	}

	return stringTable{strs: strs}, nil
}

// at returns the string at idx, or "" with ok=false if idx is out of
// range.
func (t stringTable) at(idx uint32) (string, bool) {
	if int(idx) >= len(t.strs) {
		return "", false
	}

	return t.strs[idx], true
}
