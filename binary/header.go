package binary

import (
	"encoding/binary"
	"fmt"

	"go.jacobcolvin.com/tlbx/errs"
)

// fileHeader is the decoded form of the 64-byte file header.
type fileHeader struct {
	flags uint32

	stringTableOffset  uint64
	schemaTableOffset  uint64
	sectionIndexOffset uint64
	dataRegionOffset   uint64

	stringCount  uint32
	schemaCount  uint32
	sectionCount uint32
}

func (h fileHeader) compressedAdvisory() bool { return h.flags&flagCompressedAdvisory != 0 }
func (h fileHeader) rootArray() bool          { return h.flags&flagRootArray != 0 }

func encodeHeader(h fileHeader) []byte {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], VersionMajor)
	binary.LittleEndian.PutUint16(buf[6:8], VersionMinor)
	binary.LittleEndian.PutUint32(buf[8:12], h.flags)
	// buf[12:16] reserved

	binary.LittleEndian.PutUint64(buf[16:24], h.stringTableOffset)
	binary.LittleEndian.PutUint64(buf[24:32], h.schemaTableOffset)
	binary.LittleEndian.PutUint64(buf[32:40], h.sectionIndexOffset)
	binary.LittleEndian.PutUint64(buf[40:48], h.dataRegionOffset)

	binary.LittleEndian.PutUint32(buf[48:52], h.stringCount)
	binary.LittleEndian.PutUint32(buf[52:56], h.schemaCount)
	binary.LittleEndian.PutUint32(buf[56:60], h.sectionCount)
	// buf[60:64] reserved for a future checksum

	return buf
}

func decodeHeader(buf []byte) (fileHeader, error) {
	if len(buf) < HeaderSize {
		return fileHeader{}, fmt.Errorf("binary: truncated header: %w", errs.ErrIo)
	}

	if string(buf[0:4]) != Magic {
		return fileHeader{}, fmt.Errorf("binary: bad magic %q: %w", buf[0:4], errs.ErrInvalidMagic)
	}

	major := binary.LittleEndian.Uint16(buf[4:6])
	if major != VersionMajor {
		return fileHeader{}, fmt.Errorf("binary: unsupported major version %d: %w", major, errs.ErrInvalidVersion)
	}

	return fileHeader{
		flags:              binary.LittleEndian.Uint32(buf[8:12]),
		stringTableOffset:  binary.LittleEndian.Uint64(buf[16:24]),
		schemaTableOffset:  binary.LittleEndian.Uint64(buf[24:32]),
		sectionIndexOffset: binary.LittleEndian.Uint64(buf[32:40]),
		dataRegionOffset:   binary.LittleEndian.Uint64(buf[40:48]),
		stringCount:        binary.LittleEndian.Uint32(buf[48:52]),
		schemaCount:        binary.LittleEndian.Uint32(buf[52:56]),
		sectionCount:       binary.LittleEndian.Uint32(buf[56:60]),
	}, nil
}
