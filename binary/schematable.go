package binary

import (
	"encoding/binary"
	"fmt"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/value"
)

// fieldTypeCode resolves a declared field's type-code and "extra" index
// (the struct/union name it cross-references, or noSchema if none).
// Struct-name resolution checks the document's struct registry first,
// then its union registry, since the two share a namespace-free
// encoding here: a field typed with a name that isn't a primitive and
// isn't "object" must be one or the other.
func fieldTypeCode(doc *value.Document, si *stringInterner, f value.Field) (typeCode, uint16) {
	switch f.Type {
	case "int":
		return tcInt64, noSchema
	case "uint":
		return tcUInt64, noSchema
	case "float":
		return tcFloat64, noSchema
	case "bool":
		return tcBool, noSchema
	case "string":
		return tcString, noSchema
	case "bytes":
		return tcBytes, noSchema
	case "timestamp":
		return tcTimestamp, noSchema
	case "object":
		return tcObject, noSchema
	}

	if _, ok := doc.Schema(f.Type); ok {
		return tcStruct, uint16(si.intern(f.Type))
	}

	if _, ok := doc.Union(f.Type); ok {
		return tcTagged, uint16(si.intern(f.Type))
	}

	// Unknown reference: encode as untyped object rather than failing the
	// whole document. The parser does not check field type names against
	// registered structs or unions at `@struct`/`@union` definition time,
	// so parsed documents can reach this path as well as hand-built ones.
	return tcObject, noSchema
}

// decodeFieldType reverses [fieldTypeCode] into a value.Field's Type
// string.
func decodeFieldType(tc typeCode, extra uint16, strs stringTable) (string, error) {
	switch tc {
	case tcInt64:
		return "int", nil
	case tcUInt64:
		return "uint", nil
	case tcFloat64:
		return "float", nil
	case tcBool:
		return "bool", nil
	case tcString:
		return "string", nil
	case tcBytes:
		return "bytes", nil
	case tcTimestamp:
		return "timestamp", nil
	case tcObject:
		return "object", nil
	case tcStruct, tcTagged:
		name, ok := strs.at(uint32(extra))
		if !ok {
			return "", fmt.Errorf("binary: field references out-of-range string %d: %w", extra, errs.ErrIo)
		}

		return name, nil
	default:
		return "", fmt.Errorf("binary: unknown field type code 0x%02x: %w", tc, errs.ErrInvalidType)
	}
}

func encodeFieldList(si *stringInterner, doc *value.Document, fields []value.Field) []byte {
	buf := make([]byte, len(fields)*fieldEntrySize)

	for i, f := range fields {
		tc, extra := fieldTypeCode(doc, si, f)

		var flags uint8
		if f.Nullable {
			flags |= fieldFlagNullable
		}

		if f.IsArray {
			flags |= fieldFlagIsArray
		}

		off := i * fieldEntrySize
		binary.LittleEndian.PutUint32(buf[off:off+4], si.intern(f.Name))
		buf[off+4] = uint8(tc)
		buf[off+5] = flags
		binary.LittleEndian.PutUint16(buf[off+6:off+8], extra)
	}

	return buf
}

func decodeFieldList(buf []byte, count uint16, strs stringTable) ([]value.Field, int, error) {
	need := int(count) * fieldEntrySize
	if need > len(buf) {
		return nil, 0, fmt.Errorf("binary: truncated field list: %w", errs.ErrIo)
	}

	fields := make([]value.Field, count)

	for i := 0; i < int(count); i++ {
		off := i * fieldEntrySize

		nameIdx := binary.LittleEndian.Uint32(buf[off : off+4])
		tc := typeCode(buf[off+4])
		flags := buf[off+5]
		extra := binary.LittleEndian.Uint16(buf[off+6 : off+8])

		name, ok := strs.at(nameIdx)
		if !ok {
			return nil, 0, fmt.Errorf("binary: field name out of range: %w", errs.ErrIo)
		}

		typeName, err := decodeFieldType(tc, extra, strs)
		if err != nil {
			return nil, 0, err
		}

		extraRef := ""
		if tc == tcStruct || tc == tcTagged {
			extraRef = typeName
		}

		fields[i] = value.Field{
			Name:     name,
			Type:     typeName,
			Nullable: flags&fieldFlagNullable != 0,
			IsArray:  flags&fieldFlagIsArray != 0,
			ExtraRef: extraRef,
		}
	}

	return fields, need, nil
}

// encodeSchemaTable renders the schema table: size u32, struct-count
// u16, union-count u16, struct offset array, struct definitions, union
// offset array, union definitions. Each offset is relative to the start
// of the definitions region that immediately follows its own offset
// array.
func encodeSchemaTable(si *stringInterner, doc *value.Document) []byte {
	structNames := doc.SchemaNames()
	unionNames := doc.UnionNames()

	var structDefs, unionDefs []byte

	structOffsets := make([]byte, len(structNames)*4)

	for i, name := range structNames {
		s, _ := doc.Schema(name)
		binary.LittleEndian.PutUint32(structOffsets[i*4:i*4+4], uint32(len(structDefs)))

		head := make([]byte, 8)
		binary.LittleEndian.PutUint32(head[0:4], si.intern(s.Name))
		binary.LittleEndian.PutUint16(head[4:6], uint16(len(s.Fields)))
		// head[6:8] reserved

		structDefs = append(structDefs, head...)
		structDefs = append(structDefs, encodeFieldList(si, doc, s.Fields)...)
	}

	unionOffsets := make([]byte, len(unionNames)*4)

	for i, name := range unionNames {
		u, _ := doc.Union(name)
		binary.LittleEndian.PutUint32(unionOffsets[i*4:i*4+4], uint32(len(unionDefs)))

		head := make([]byte, 8)
		binary.LittleEndian.PutUint32(head[0:4], si.intern(u.Name))
		binary.LittleEndian.PutUint16(head[4:6], uint16(len(u.Variants)))

		unionDefs = append(unionDefs, head...)

		for _, va := range u.Variants {
			vhead := make([]byte, 8)
			binary.LittleEndian.PutUint32(vhead[0:4], si.intern(va.Name))
			binary.LittleEndian.PutUint16(vhead[4:6], uint16(len(va.Fields)))

			unionDefs = append(unionDefs, vhead...)
			unionDefs = append(unionDefs, encodeFieldList(si, doc, va.Fields)...)
		}
	}

	body := make([]byte, 0, 4+len(structOffsets)+len(structDefs)+len(unionOffsets)+len(unionDefs))
	body = append(body, structOffsets...)
	body = append(body, structDefs...)
	body = append(body, unionOffsets...)
	body = append(body, unionDefs...)

	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(body)))
	binary.LittleEndian.PutUint16(out[4:6], uint16(len(structNames)))
	binary.LittleEndian.PutUint16(out[6:8], uint16(len(unionNames)))
	copy(out[8:], body)

	return out
}

// decodedSchemaTable is the parsed form of the schema table: every
// struct and union definition, keyed by name.
type decodedSchemaTable struct {
	structs map[string]*value.Schema
	unions  map[string]*value.Union
}

func decodeSchemaTable(buf []byte, strs stringTable) (decodedSchemaTable, error) {
	out := decodedSchemaTable{structs: map[string]*value.Schema{}, unions: map[string]*value.Union{}}

	if len(buf) < 8 {
		return out, fmt.Errorf("binary: truncated schema table: %w", errs.ErrIo)
	}

	size := binary.LittleEndian.Uint32(buf[0:4])
	structCount := binary.LittleEndian.Uint16(buf[4:6])
	unionCount := binary.LittleEndian.Uint16(buf[6:8])

	if uint64(8+size) > uint64(len(buf)) {
		return out, fmt.Errorf("binary: schema table size exceeds buffer: %w", errs.ErrIo)
	}

	body := buf[8 : 8+size]

	structOffsetsSize := int(structCount) * 4
	if structOffsetsSize > len(body) {
		return out, fmt.Errorf("binary: truncated struct offset array: %w", errs.ErrIo)
	}

	structOffsets := body[:structOffsetsSize]
	rest := body[structOffsetsSize:]

	// The struct definitions region runs up to the start of the union
	// offset array; its length is recovered from the last struct's
	// decoded size rather than stored explicitly, so definitions are
	// parsed in order and the boundary falls out of that walk.
	structDefsEnd := 0

	for i := 0; i < int(structCount); i++ {
		off := binary.LittleEndian.Uint32(structOffsets[i*4 : i*4+4])
		if int(off) > len(rest) || int(off)+8 > len(rest) {
			return out, fmt.Errorf("binary: struct %d offset out of range: %w", i, errs.ErrIo)
		}

		head := rest[off : off+8]
		nameIdx := binary.LittleEndian.Uint32(head[0:4])
		fieldCount := binary.LittleEndian.Uint16(head[4:6])

		name, ok := strs.at(nameIdx)
		if !ok {
			return out, fmt.Errorf("binary: struct %d name out of range: %w", i, errs.ErrIo)
		}

		fields, consumed, err := decodeFieldList(rest[off+8:], fieldCount, strs)
		if err != nil {
			return out, err
		}

		out.structs[name] = &value.Schema{Name: name, Fields: fields}

		if end := int(off) + 8 + consumed; end > structDefsEnd {
			structDefsEnd = end
		}
	}

	afterStructs := rest[structDefsEnd:]

	unionOffsetsSize := int(unionCount) * 4
	if unionOffsetsSize > len(afterStructs) {
		return out, fmt.Errorf("binary: truncated union offset array: %w", errs.ErrIo)
	}

	unionOffsets := afterStructs[:unionOffsetsSize]
	unionRest := afterStructs[unionOffsetsSize:]

	for i := 0; i < int(unionCount); i++ {
		off := binary.LittleEndian.Uint32(unionOffsets[i*4 : i*4+4])
		if int(off)+8 > len(unionRest) {
			return out, fmt.Errorf("binary: union %d offset out of range: %w", i, errs.ErrIo)
		}

		head := unionRest[off : off+8]
		nameIdx := binary.LittleEndian.Uint32(head[0:4])
		variantCount := binary.LittleEndian.Uint16(head[4:6])

		name, ok := strs.at(nameIdx)
		if !ok {
			return out, fmt.Errorf("binary: union %d name out of range: %w", i, errs.ErrIo)
		}

		cursor := int(off) + 8
		variants := make([]value.Variant, variantCount)

		for v := 0; v < int(variantCount); v++ {
			if cursor+8 > len(unionRest) {
				return out, fmt.Errorf("binary: union %q variant %d truncated: %w", name, v, errs.ErrIo)
			}

			vhead := unionRest[cursor : cursor+8]
			vNameIdx := binary.LittleEndian.Uint32(vhead[0:4])
			vFieldCount := binary.LittleEndian.Uint16(vhead[4:6])

			vName, ok := strs.at(vNameIdx)
			if !ok {
				return out, fmt.Errorf("binary: union %q variant %d name out of range: %w", name, v, errs.ErrIo)
			}

			vFields, consumed, err := decodeFieldList(unionRest[cursor+8:], vFieldCount, strs)
			if err != nil {
				return out, err
			}

			variants[v] = value.Variant{Name: vName, Fields: vFields}
			cursor += 8 + consumed
		}

		out.unions[name] = &value.Union{Name: name, Variants: variants}
	}

	return out, nil
}
