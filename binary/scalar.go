package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.jacobcolvin.com/tlbx/errs"
)

// narrowIntCode picks the smallest signed width that can hold i.
func narrowIntCode(i int64) typeCode {
	switch {
	case i >= math.MinInt8 && i <= math.MaxInt8:
		return tcInt8
	case i >= math.MinInt16 && i <= math.MaxInt16:
		return tcInt16
	case i >= math.MinInt32 && i <= math.MaxInt32:
		return tcInt32
	default:
		return tcInt64
	}
}

// narrowUIntCode picks the smallest unsigned width that can hold u.
func narrowUIntCode(u uint64) typeCode {
	switch {
	case u <= math.MaxUint8:
		return tcUInt8
	case u <= math.MaxUint16:
		return tcUInt16
	case u <= math.MaxUint32:
		return tcUInt32
	default:
		return tcUInt64
	}
}

// intWidth returns the number of bytes a fixed-width numeric type code
// occupies, or 0 if tc isn't one.
func intWidth(tc typeCode) int {
	switch tc {
	case tcInt8, tcUInt8, tcBool:
		return 1
	case tcInt16, tcUInt16:
		return 2
	case tcInt32, tcUInt32, tcFloat32:
		return 4
	case tcInt64, tcUInt64, tcFloat64:
		return 8
	default:
		return 0
	}
}

func encodeSignedPayload(tc typeCode, i int64) []byte {
	buf := make([]byte, intWidth(tc))

	switch tc {
	case tcInt8:
		buf[0] = byte(int8(i))
	case tcInt16:
		binary.LittleEndian.PutUint16(buf, uint16(int16(i)))
	case tcInt32:
		binary.LittleEndian.PutUint32(buf, uint32(int32(i)))
	case tcInt64:
		binary.LittleEndian.PutUint64(buf, uint64(i))
	}

	return buf
}

func decodeSignedPayload(tc typeCode, buf []byte) (int64, int, error) {
	w := intWidth(tc)
	if w == 0 || len(buf) < w {
		return 0, 0, fmt.Errorf("binary: truncated signed int payload: %w", errs.ErrIo)
	}

	switch tc {
	case tcInt8:
		return int64(int8(buf[0])), 1, nil
	case tcInt16:
		return int64(int16(binary.LittleEndian.Uint16(buf))), 2, nil
	case tcInt32:
		return int64(int32(binary.LittleEndian.Uint32(buf))), 4, nil
	case tcInt64:
		return int64(binary.LittleEndian.Uint64(buf)), 8, nil
	default:
		return 0, 0, fmt.Errorf("binary: type code 0x%02x is not a signed int: %w", tc, errs.ErrInvalidType)
	}
}

func encodeUnsignedPayload(tc typeCode, u uint64) []byte {
	buf := make([]byte, intWidth(tc))

	switch tc {
	case tcUInt8:
		buf[0] = byte(u)
	case tcUInt16:
		binary.LittleEndian.PutUint16(buf, uint16(u))
	case tcUInt32:
		binary.LittleEndian.PutUint32(buf, uint32(u))
	case tcUInt64:
		binary.LittleEndian.PutUint64(buf, u)
	}

	return buf
}

func decodeUnsignedPayload(tc typeCode, buf []byte) (uint64, int, error) {
	w := intWidth(tc)
	if w == 0 || len(buf) < w {
		return 0, 0, fmt.Errorf("binary: truncated unsigned int payload: %w", errs.ErrIo)
	}

	switch tc {
	case tcUInt8:
		return uint64(buf[0]), 1, nil
	case tcUInt16:
		return uint64(binary.LittleEndian.Uint16(buf)), 2, nil
	case tcUInt32:
		return uint64(binary.LittleEndian.Uint32(buf)), 4, nil
	case tcUInt64:
		return binary.LittleEndian.Uint64(buf), 8, nil
	default:
		return 0, 0, fmt.Errorf("binary: type code 0x%02x is not an unsigned int: %w", tc, errs.ErrInvalidType)
	}
}

func encodeFloat64Payload(f float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))

	return buf
}

func decodeFloat64Payload(buf []byte) (float64, int, error) {
	if len(buf) < 8 {
		return 0, 0, fmt.Errorf("binary: truncated float payload: %w", errs.ErrIo)
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), 8, nil
}

func encodeBytesPayload(raw []byte) []byte {
	lenBuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenBuf, uint64(len(raw)))

	out := make([]byte, 0, n+len(raw))
	out = append(out, lenBuf[:n]...)
	out = append(out, raw...)

	return out
}

func decodeBytesPayload(buf []byte) ([]byte, int, error) {
	length, n := binary.Uvarint(buf)
	if n <= 0 {
		return nil, 0, fmt.Errorf("binary: invalid bytes-length varint: %w", errs.ErrIo)
	}

	end := n + int(length)
	if end > len(buf) {
		return nil, 0, fmt.Errorf("binary: truncated bytes payload: %w", errs.ErrIo)
	}

	out := make([]byte, length)
	copy(out, buf[n:end])

	return out, end, nil
}

func encodeTimestampPayload(millis int64, offsetMinutes int16) []byte {
	buf := make([]byte, 10)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(millis))
	binary.LittleEndian.PutUint16(buf[8:10], uint16(offsetMinutes))

	return buf
}

func decodeTimestampPayload(buf []byte) (int64, int16, int, error) {
	if len(buf) < 10 {
		return 0, 0, 0, fmt.Errorf("binary: truncated timestamp payload: %w", errs.ErrIo)
	}

	millis := int64(binary.LittleEndian.Uint64(buf[0:8]))
	offset := int16(binary.LittleEndian.Uint16(buf[8:10]))

	return millis, offset, 10, nil
}
