package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/value"
)

// decodeTyped reverses [encodeTyped]: given the leading type code
// (already consumed by the caller) and the bytes that follow, it
// returns the decoded Value and how many bytes of buf it consumed.
func decodeTyped(code typeCode, buf []byte, strs stringTable, schemas decodedSchemaTable) (value.Value, int, error) {
	switch code {
	case tcNull:
		return value.Null, 0, nil
	case tcBool:
		if len(buf) < 1 {
			return value.Null, 0, fmt.Errorf("binary: truncated bool: %w", errs.ErrIo)
		}

		return value.NewBool(buf[0] != 0), 1, nil
	case tcInt8, tcInt16, tcInt32, tcInt64:
		i, n, err := decodeSignedPayload(code, buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewInt(i), n, nil
	case tcUInt8, tcUInt16, tcUInt32, tcUInt64:
		u, n, err := decodeUnsignedPayload(code, buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewUInt(u), n, nil
	case tcFloat64:
		f, n, err := decodeFloat64Payload(buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewFloat(f), n, nil
	case tcFloat32:
		if len(buf) < 4 {
			return value.Null, 0, fmt.Errorf("binary: truncated float32: %w", errs.ErrIo)
		}

		f := math.Float32frombits(binary.LittleEndian.Uint32(buf))

		return value.NewFloat(float64(f)), 4, nil
	case tcString:
		s, n, err := readStringIndex(buf, strs)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewString(s), n, nil
	case tcBytes:
		b, n, err := decodeBytesPayload(buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewBytes(b), n, nil
	case tcTimestamp:
		millis, off, n, err := decodeTimestampPayload(buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewTimestamp(millis, off), n, nil
	case tcJsonNumber:
		s, n, err := readStringIndex(buf, strs)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewJsonNumber(s), n, nil
	case tcArray, tcTuple:
		return decodeArrayBody(buf, strs, schemas)
	case tcStruct:
		return decodeStructArrayBody(buf, strs, schemas)
	case tcObject:
		obj, n, err := decodeObjectBody(buf, strs, schemas)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewObject(obj), n, nil
	case tcMap:
		entries, n, err := decodeMapBody(buf, strs, schemas)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewMap(entries), n, nil
	case tcRef:
		s, n, err := readStringIndex(buf, strs)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewRef(s), n, nil
	case tcTagged:
		if len(buf) < 5 {
			return value.Null, 0, fmt.Errorf("binary: truncated tagged value: %w", errs.ErrIo)
		}

		tag, _, err := readStringIndex(buf[0:4], strs)
		if err != nil {
			return value.Null, 0, err
		}

		innerCode := typeCode(buf[4])

		inner, n, err := decodeTyped(innerCode, buf[5:], strs, schemas)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewTagged(tag, inner), 5 + n, nil
	default:
		return value.Null, 0, fmt.Errorf("binary: unknown type code 0x%02x: %w", code, errs.ErrInvalidType)
	}
}

func readStringIndex(buf []byte, strs stringTable) (string, int, error) {
	if len(buf) < 4 {
		return "", 0, fmt.Errorf("binary: truncated string index: %w", errs.ErrIo)
	}

	idx := binary.LittleEndian.Uint32(buf[0:4])

	s, ok := strs.at(idx)
	if !ok {
		return "", 0, fmt.Errorf("binary: string index %d out of range: %w", idx, errs.ErrIo)
	}

	return s, 4, nil
}

// decodeArrayBody reverses the three non-struct-array forms
// [encodeArrayBody] can produce: homogeneous Int32, homogeneous String,
// or the heterogeneous per-element fallback, dispatching on the
// elem-type byte that follows the count.
func decodeArrayBody(buf []byte, strs stringTable, schemas decodedSchemaTable) (value.Value, int, error) {
	if len(buf) < 5 {
		return value.Null, 0, fmt.Errorf("binary: truncated array body: %w", errs.ErrIo)
	}

	count := binary.LittleEndian.Uint32(buf[0:4])
	elemType := typeCode(buf[4])
	cursor := 5

	switch elemType {
	case tcInt32:
		need := int(count) * 4
		if cursor+need > len(buf) {
			return value.Null, 0, fmt.Errorf("binary: truncated int32 array: %w", errs.ErrIo)
		}

		items := make([]value.Value, count)

		for i := 0; i < int(count); i++ {
			off := cursor + i*4
			items[i] = value.NewInt(int64(int32(binary.LittleEndian.Uint32(buf[off : off+4]))))
		}

		return value.NewArray(items), cursor + need, nil
	case tcString:
		need := int(count) * 4
		if cursor+need > len(buf) {
			return value.Null, 0, fmt.Errorf("binary: truncated string array: %w", errs.ErrIo)
		}

		items := make([]value.Value, count)

		for i := 0; i < int(count); i++ {
			off := cursor + i*4

			s, _, err := readStringIndex(buf[off:off+4], strs)
			if err != nil {
				return value.Null, 0, err
			}

			items[i] = value.NewString(s)
		}

		return value.NewArray(items), cursor + need, nil
	case tcHeterogeneousArraySentinel:
		items := make([]value.Value, count)

		for i := 0; i < int(count); i++ {
			if cursor+1 > len(buf) {
				return value.Null, 0, fmt.Errorf("binary: truncated heterogeneous array element %d: %w", i, errs.ErrIo)
			}

			code := typeCode(buf[cursor])
			cursor++

			v, n, err := decodeTyped(code, buf[cursor:], strs, schemas)
			if err != nil {
				return value.Null, 0, err
			}

			items[i] = v
			cursor += n
		}

		return value.NewArray(items), cursor, nil
	default:
		return value.Null, 0, fmt.Errorf("binary: unknown array elem-type code 0x%02x: %w", elemType, errs.ErrInvalidType)
	}
}

func decodeStructArrayBody(buf []byte, strs stringTable, schemas decodedSchemaTable) (value.Value, int, error) {
	if len(buf) < 8 {
		return value.Null, 0, fmt.Errorf("binary: truncated struct array header: %w", errs.ErrIo)
	}

	count := binary.LittleEndian.Uint32(buf[0:4])
	schemaIdx := binary.LittleEndian.Uint16(buf[4:6])
	cursor := 8

	name, ok := strs.at(uint32(schemaIdx))
	if !ok {
		return value.Null, 0, fmt.Errorf("binary: struct array schema index out of range: %w", errs.ErrInvalidType)
	}

	schema, ok := schemas.structs[name]
	if !ok {
		return value.Null, 0, fmt.Errorf("binary: struct array references undefined struct %q: %w", name, errs.ErrUnknownStruct)
	}

	items := make([]value.Value, count)

	for i := 0; i < int(count); i++ {
		obj, n, err := decodeStructRow(buf[cursor:], schema, strs, schemas)
		if err != nil {
			return value.Null, 0, err
		}

		items[i] = value.NewObject(obj)
		cursor += n
	}

	return value.NewArray(items), cursor, nil
}

// decodeStructRow reverses [encodeStructRow]. A set bitmap bit is
// reconstructed as an absent field when the field is nullable (the
// common `~`-placeholder case) or as an explicit Null when it isn't
// (the only state a non-nullable field's bit can represent). The bitmap
// carries only one bit per field; the encoder never writes a row with an
// explicit Null in a nullable field on this path, so a set bit on a
// nullable field always stands for an absent field.
func decodeStructRow(buf []byte, schema *value.Schema, strs stringTable, schemas decodedSchemaTable) (*value.Object, int, error) {
	bitmapSize := (len(schema.Fields) + 7) / 8
	if bitmapSize > len(buf) {
		return nil, 0, fmt.Errorf("binary: truncated struct row bitmap: %w", errs.ErrIo)
	}

	bitmap := buf[:bitmapSize]
	cursor := bitmapSize

	obj := value.NewObjectWithCapacity(len(schema.Fields))

	for i, field := range schema.Fields {
		if bitmap[i/8]&(1<<uint(i%8)) != 0 {
			if !field.Nullable {
				obj.Set(field.Name, value.Null)
			}

			continue
		}

		v, n, err := decodeFieldValue(buf[cursor:], field, strs, schemas)
		if err != nil {
			return nil, 0, err
		}

		obj.Set(field.Name, v)
		cursor += n
	}

	return obj, cursor, nil
}

// decodeFieldValue reverses [encodeFieldValue].
func decodeFieldValue(buf []byte, field value.Field, strs stringTable, schemas decodedSchemaTable) (value.Value, int, error) {
	if field.IsArray {
		if len(buf) < 4 {
			return value.Null, 0, fmt.Errorf("binary: truncated field array: %w", errs.ErrIo)
		}

		count := binary.LittleEndian.Uint32(buf[0:4])
		cursor := 4

		elemField := value.Field{Name: field.Name, Type: field.Type, Nullable: field.Nullable}
		items := make([]value.Value, count)

		for i := 0; i < int(count); i++ {
			v, n, err := decodeFieldValue(buf[cursor:], elemField, strs, schemas)
			if err != nil {
				return value.Null, 0, err
			}

			items[i] = v
			cursor += n
		}

		return value.NewArray(items), cursor, nil
	}

	switch field.Type {
	case "int":
		i, n, err := decodeSignedPayload(tcInt64, buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewInt(i), n, nil
	case "uint":
		u, n, err := decodeUnsignedPayload(tcUInt64, buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewUInt(u), n, nil
	case "float":
		f, n, err := decodeFloat64Payload(buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewFloat(f), n, nil
	case "bool":
		if len(buf) < 1 {
			return value.Null, 0, fmt.Errorf("binary: truncated bool field: %w", errs.ErrIo)
		}

		return value.NewBool(buf[0] != 0), 1, nil
	case "string":
		s, n, err := readStringIndex(buf, strs)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewString(s), n, nil
	case "bytes":
		b, n, err := decodeBytesPayload(buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewBytes(b), n, nil
	case "timestamp":
		millis, off, n, err := decodeTimestampPayload(buf)
		if err != nil {
			return value.Null, 0, err
		}

		return value.NewTimestamp(millis, off), n, nil
	case "object":
		if len(buf) < 1 {
			return value.Null, 0, fmt.Errorf("binary: truncated object field: %w", errs.ErrIo)
		}

		code := typeCode(buf[0])

		v, n, err := decodeTyped(code, buf[1:], strs, schemas)

		return v, 1 + n, err
	default:
		if schema, ok := schemas.structs[field.Type]; ok {
			obj, n, err := decodeStructRow(buf, schema, strs, schemas)
			if err != nil {
				return value.Null, 0, err
			}

			return value.NewObject(obj), n, nil
		}

		if len(buf) < 1 {
			return value.Null, 0, fmt.Errorf("binary: truncated union field: %w", errs.ErrIo)
		}

		code := typeCode(buf[0])

		v, n, err := decodeTyped(code, buf[1:], strs, schemas)

		return v, 1 + n, err
	}
}

func decodeObjectBody(buf []byte, strs stringTable, schemas decodedSchemaTable) (*value.Object, int, error) {
	if len(buf) < 2 {
		return nil, 0, fmt.Errorf("binary: truncated object header: %w", errs.ErrIo)
	}

	fieldCount := binary.LittleEndian.Uint16(buf[0:2])
	cursor := 2

	obj := value.NewObjectWithCapacity(int(fieldCount))

	for i := 0; i < int(fieldCount); i++ {
		if cursor+5 > len(buf) {
			return nil, 0, fmt.Errorf("binary: truncated object field %d: %w", i, errs.ErrIo)
		}

		key, _, err := readStringIndex(buf[cursor:cursor+4], strs)
		if err != nil {
			return nil, 0, err
		}

		cursor += 4

		code := typeCode(buf[cursor])
		cursor++

		v, n, err := decodeTyped(code, buf[cursor:], strs, schemas)
		if err != nil {
			return nil, 0, err
		}

		obj.Set(key, v)
		cursor += n
	}

	return obj, cursor, nil
}

func decodeMapBody(buf []byte, strs stringTable, schemas decodedSchemaTable) ([]value.MapEntry, int, error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("binary: truncated map header: %w", errs.ErrIo)
	}

	count := binary.LittleEndian.Uint32(buf[0:4])
	cursor := 4

	entries := make([]value.MapEntry, count)

	for i := 0; i < int(count); i++ {
		if cursor+1 > len(buf) {
			return nil, 0, fmt.Errorf("binary: truncated map key %d: %w", i, errs.ErrIo)
		}

		kCode := typeCode(buf[cursor])
		cursor++

		k, n, err := decodeTyped(kCode, buf[cursor:], strs, schemas)
		if err != nil {
			return nil, 0, err
		}

		cursor += n

		if cursor+1 > len(buf) {
			return nil, 0, fmt.Errorf("binary: truncated map value %d: %w", i, errs.ErrIo)
		}

		vCode := typeCode(buf[cursor])
		cursor++

		v, n2, err := decodeTyped(vCode, buf[cursor:], strs, schemas)
		if err != nil {
			return nil, 0, err
		}

		cursor += n2

		entries[i] = value.MapEntry{Key: k, Value: v}
	}

	return entries, cursor, nil
}
