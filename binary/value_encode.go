package binary

import (
	"encoding/binary"

	"go.jacobcolvin.com/tlbx/value"
)

// encodeTyped renders v as a self-describing (type-code, payload) pair,
// used anywhere a value's shape isn't already pinned by surrounding
// schema context: heterogeneous array elements, generic Object fields,
// Map keys/values, Tagged/Ref payloads.
func encodeTyped(si *stringInterner, doc *value.Document, v value.Value) (typeCode, []byte) {
	switch v.Kind() {
	case value.KindNull:
		return tcNull, nil
	case value.KindBool:
		b := byte(0)
		if v.Bool() {
			b = 1
		}

		return tcBool, []byte{b}
	case value.KindInt:
		tc := narrowIntCode(v.Int())

		return tc, encodeSignedPayload(tc, v.Int())
	case value.KindUInt:
		tc := narrowUIntCode(v.UInt())

		return tc, encodeUnsignedPayload(tc, v.UInt())
	case value.KindFloat:
		return tcFloat64, encodeFloat64Payload(v.Float())
	case value.KindString:
		return tcString, encodeStringIndex(si, v.Str())
	case value.KindBytes:
		return tcBytes, encodeBytesPayload(v.Bytes())
	case value.KindTimestamp:
		millis, off := v.Timestamp()

		return tcTimestamp, encodeTimestampPayload(millis, off)
	case value.KindJsonNumber:
		return tcJsonNumber, encodeStringIndex(si, v.JsonNumber())
	case value.KindArray:
		return encodeArrayBody(si, doc, v.Array())
	case value.KindObject:
		return tcObject, encodeObjectBody(si, doc, v.Object())
	case value.KindMap:
		return tcMap, encodeMapBody(si, doc, v.Map())
	case value.KindRef:
		return tcRef, encodeStringIndex(si, v.RefName())
	case value.KindTagged:
		tag, inner := v.Tagged()
		innerCode, innerBody := encodeTyped(si, doc, inner)

		buf := make([]byte, 0, 4+1+len(innerBody))
		buf = append(buf, encodeStringIndex(si, tag)...)
		buf = append(buf, byte(innerCode))
		buf = append(buf, innerBody...)

		return tcTagged, buf
	default:
		return tcNull, nil
	}
}

func encodeStringIndex(si *stringInterner, s string) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, si.intern(s))

	return buf
}

// encodeArrayBody chooses the most compact applicable form: a
// struct-array fast path when every element is an Object matching one
// registered schema, else a homogeneous Int32 or String pack, else a
// heterogeneous per-element (type, payload) fallback. Unlike the text
// emitter's table-schema heuristic, this choice is not gated on any
// option and applies opportunistically at any depth of nesting, not
// only top-level sections. The struct-array path stores each field at
// its declared type (see coerceScalar), so a value whose kind differs
// from its field's declared type decodes as that declared type; the
// other forms decode back to the identical Array Value.
func encodeArrayBody(si *stringInterner, doc *value.Document, items []value.Value) (typeCode, []byte) {
	if schema, ok := matchingSchema(doc, items); ok {
		return tcStruct, encodeStructArrayBody(si, doc, schema, items)
	}

	if allFitInt32(items) {
		return tcArray, encodeHomogeneousIntBody(items)
	}

	if allStrings(items) {
		return tcArray, encodeHomogeneousStringBody(si, items)
	}

	return tcArray, encodeHeterogeneousArrayBody(si, doc, items)
}

func matchingSchema(doc *value.Document, items []value.Value) (*value.Schema, bool) {
	if len(items) == 0 {
		return nil, false
	}

	for _, item := range items {
		if item.Kind() != value.KindObject {
			return nil, false
		}
	}

	for _, name := range doc.SchemaNames() {
		schema, _ := doc.Schema(name)
		if schemaMatchesAll(schema, items) {
			return schema, true
		}
	}

	return nil, false
}

func schemaMatchesAll(schema *value.Schema, items []value.Value) bool {
	for _, item := range items {
		obj := item.Object()

		for _, key := range obj.Keys() {
			if _, ok := schema.FieldByName(key); !ok {
				return false
			}
		}

		for _, field := range schema.Fields {
			v, present := obj.Get(field.Name)
			if !present && !field.Nullable {
				return false
			}

			// A set bitmap bit on a nullable field decodes as absent, so an
			// explicit Null there must take the per-element form instead.
			if present && field.Nullable && v.IsNull() {
				return false
			}
		}
	}

	return true
}

func allFitInt32(items []value.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, it := range items {
		if it.Kind() != value.KindInt || it.Int() < -2147483648 || it.Int() > 2147483647 {
			return false
		}
	}

	return true
}

func allStrings(items []value.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, it := range items {
		if it.Kind() != value.KindString {
			return false
		}
	}

	return true
}

// encodeHomogeneousIntBody packs count u32, elem-type=Int32 (0x04), then
// packed i32s, for an array whose every element is an Int within i32
// range.
func encodeHomogeneousIntBody(items []value.Value) []byte {
	buf := make([]byte, 0, 4+1+len(items)*4)
	buf = appendUint32(buf, uint32(len(items)))
	buf = append(buf, byte(tcInt32))

	for _, it := range items {
		buf = appendUint32(buf, uint32(int32(it.Int())))
	}

	return buf
}

// encodeHomogeneousStringBody packs count u32, elem-type=String (0x10),
// then packed u32 string-table indices.
func encodeHomogeneousStringBody(si *stringInterner, items []value.Value) []byte {
	buf := make([]byte, 0, 4+1+len(items)*4)
	buf = appendUint32(buf, uint32(len(items)))
	buf = append(buf, byte(tcString))

	for _, it := range items {
		buf = appendUint32(buf, si.intern(it.Str()))
	}

	return buf
}

// encodeHeterogeneousArrayBody packs count u32, sentinel 0xFF, then
// per-element (type-code u8, payload).
func encodeHeterogeneousArrayBody(si *stringInterner, doc *value.Document, items []value.Value) []byte {
	buf := make([]byte, 0, 4+1)
	buf = appendUint32(buf, uint32(len(items)))
	buf = append(buf, byte(tcHeterogeneousArraySentinel))

	for _, it := range items {
		code, body := encodeTyped(si, doc, it)
		buf = append(buf, byte(code))
		buf = append(buf, body...)
	}

	return buf
}

// encodeStructArrayBody packs count u32, schema-idx u16, null-bitmap-size
// u16, then per row (null bitmap, then non-null field values).
func encodeStructArrayBody(si *stringInterner, doc *value.Document, schema *value.Schema, items []value.Value) []byte {
	bitmapSize := (len(schema.Fields) + 7) / 8

	buf := make([]byte, 0, 4+2+2)
	buf = appendUint32(buf, uint32(len(items)))
	buf = appendUint16(buf, uint16(si.intern(schema.Name)))
	buf = appendUint16(buf, uint16(bitmapSize))

	for _, item := range items {
		buf = append(buf, encodeStructRow(si, doc, schema, item.Object())...)
	}

	return buf
}

// encodeStructRow renders one schema-bound row: a null/absent bitmap
// (bit i set ⇒ field i is absent or explicitly Null; the bitmap has one
// bit per field, so [schemaMatchesAll] keeps rows with an explicit Null
// in a nullable field off this path), followed by the fixed-width
// payload of every field whose bit is clear, in declared field order.
func encodeStructRow(si *stringInterner, doc *value.Document, schema *value.Schema, obj *value.Object) []byte {
	bitmapSize := (len(schema.Fields) + 7) / 8
	bitmap := make([]byte, bitmapSize)

	var values [][]byte

	for i, field := range schema.Fields {
		v, present := obj.Get(field.Name)
		if !present || v.IsNull() {
			bitmap[i/8] |= 1 << (uint(i) % 8)

			continue
		}

		values = append(values, encodeFieldValue(si, doc, field, v))
	}

	out := make([]byte, 0, bitmapSize+len(values)*4)
	out = append(out, bitmap...)

	for _, v := range values {
		out = append(out, v...)
	}

	return out
}

// encodeFieldValue renders a present, non-null field value at its
// declared type's fixed width. Struct-typed fields recurse into
// [encodeStructRow]; array-typed fields pack their declared element
// type homogeneously; "object"-typed and union-typed fields fall back
// to the self-describing [encodeTyped] form since their declared type
// doesn't pin a concrete shape.
func encodeFieldValue(si *stringInterner, doc *value.Document, field value.Field, v value.Value) []byte {
	if field.IsArray {
		return encodeFieldArray(si, doc, field, v.Array())
	}

	switch field.Type {
	case "int", "uint", "float", "bool", "string", "bytes", "timestamp":
		return encodeScalarField(si, field.Type, coerceScalar(field.Type, v))
	case "object":
		code, body := encodeTyped(si, doc, v)
		out := make([]byte, 0, 1+len(body))
		out = append(out, byte(code))

		return append(out, body...)
	default:
		if schema, ok := doc.Schema(field.Type); ok && v.Kind() == value.KindObject {
			return encodeStructRow(si, doc, schema, v.Object())
		}
		// Union-typed field: self-describing, since the concrete variant
		// isn't fixed by the declared type alone.
		code, body := encodeTyped(si, doc, v)
		out := make([]byte, 0, 1+len(body))
		out = append(out, byte(code))

		return append(out, body...)
	}
}

func encodeScalarField(si *stringInterner, declared string, v value.Value) []byte {
	switch declared {
	case "int":
		return encodeSignedPayload(tcInt64, v.Int())
	case "uint":
		return encodeUnsignedPayload(tcUInt64, v.UInt())
	case "float":
		return encodeFloat64Payload(v.Float())
	case "bool":
		b := byte(0)
		if v.Bool() {
			b = 1
		}

		return []byte{b}
	case "string":
		return encodeStringIndex(si, v.Str())
	case "bytes":
		return encodeBytesPayload(v.Bytes())
	case "timestamp":
		millis, off := v.Timestamp()

		return encodeTimestampPayload(millis, off)
	default:
		return nil
	}
}

// encodeFieldArray packs a declared "[]Type" field's value homogeneously:
// count u32 followed by the element type's fixed-width payloads (or, for
// a "[]Struct" field, by recursively bound struct rows).
func encodeFieldArray(si *stringInterner, doc *value.Document, field value.Field, items []value.Value) []byte {
	buf := make([]byte, 0, 4)
	buf = appendUint32(buf, uint32(len(items)))

	elemField := value.Field{Name: field.Name, Type: field.Type, Nullable: field.Nullable}

	for _, it := range items {
		buf = append(buf, encodeFieldValue(si, doc, elemField, it)...)
	}

	return buf
}

func encodeObjectBody(si *stringInterner, doc *value.Document, obj *value.Object) []byte {
	buf := make([]byte, 0, 2)
	buf = appendUint16(buf, uint16(obj.Len()))

	obj.Range(func(key string, v value.Value) bool {
		buf = appendUint32(buf, si.intern(key))

		code, body := encodeTyped(si, doc, v)
		buf = append(buf, byte(code))
		buf = append(buf, body...)

		return true
	})

	return buf
}

func encodeMapBody(si *stringInterner, doc *value.Document, entries []value.MapEntry) []byte {
	buf := make([]byte, 0, 4)
	buf = appendUint32(buf, uint32(len(entries)))

	for _, e := range entries {
		kCode, kBody := encodeTyped(si, doc, e.Key)
		buf = append(buf, byte(kCode))
		buf = append(buf, kBody...)

		vCode, vBody := encodeTyped(si, doc, e.Value)
		buf = append(buf, byte(vCode))
		buf = append(buf, vBody...)
	}

	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	tmp := make([]byte, 4)
	binary.LittleEndian.PutUint32(tmp, v)

	return append(buf, tmp...)
}

func appendUint16(buf []byte, v uint16) []byte {
	tmp := make([]byte, 2)
	binary.LittleEndian.PutUint16(tmp, v)

	return append(buf, tmp...)
}
