package textemit

import (
	"sort"
	"strconv"
	"strings"

	"go.jacobcolvin.com/tlbx/value"
)

func (e *emitter) writeValue(b *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KindInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case value.KindUInt:
		b.WriteString(strconv.FormatUint(v.UInt(), 10))
	case value.KindFloat:
		emitFloat(b, v.Float(), e.opts.CompactFloats)
	case value.KindString:
		emitQuotedString(b, v.Str())
	case value.KindBytes:
		emitBytesLiteral(b, v.Bytes())
	case value.KindTimestamp:
		millis, offset := v.Timestamp()
		b.WriteString(formatTimestamp(millis, offset))
	case value.KindJsonNumber:
		b.WriteString(v.JsonNumber())
	case value.KindArray:
		e.writeArray(b, v.Array())
	case value.KindObject:
		e.writeObject(b, v.Object())
	case value.KindMap:
		e.writeMap(b, v.Map())
	case value.KindRef:
		b.WriteByte('!')
		emitName(b, v.RefName())
	case value.KindTagged:
		tag, inner := v.Tagged()
		b.WriteByte(':')
		emitName(b, tag)
		b.WriteByte(' ')
		e.writeValue(b, inner)
	default:
		b.WriteString("null")
	}
}

// writeArray emits items as `@table Schema [...]` when every element is an
// Object matching one registered schema (see the package doc comment),
// else as a plain `[...]` array.
func (e *emitter) writeArray(b *strings.Builder, items []value.Value) {
	if schemaName, ok := e.tableSchemaFor(items); ok {
		schema, _ := e.doc.Schema(schemaName)

		b.WriteString("@table ")
		emitName(b, schemaName)
		b.WriteString(" [")
		e.writeTupleRows(b, items, schema)
		b.WriteByte(']')

		return
	}

	b.WriteByte('[')

	for i, item := range items {
		if i > 0 {
			b.WriteString(e.comma())
		}

		e.writeValue(b, item)
	}

	b.WriteByte(']')
}

// writeTupleRows emits each element of items — already known to be Objects
// bound to a single schema — as a positional tuple `(v, v, …)`, in that
// schema's field order.
func (e *emitter) writeTupleRows(b *strings.Builder, items []value.Value, schema *value.Schema) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(e.comma())
		}

		obj := item.Object()

		b.WriteByte('(')

		for j, field := range schema.Fields {
			if j > 0 {
				b.WriteString(e.comma())
			}

			if fv, present := obj.Get(field.Name); present {
				e.writeValue(b, fv)
			} else {
				b.WriteByte('~')
			}
		}

		b.WriteByte(')')
	}
}

// tableSchemaFor returns the name of a registered schema that every
// element of items (each an Object) can be losslessly rebound to: every
// key present in an element names a field of the schema, and every
// non-nullable field of the schema is present in every element (since only
// a nullable field's `~` placeholder may be dropped).
func (e *emitter) tableSchemaFor(items []value.Value) (string, bool) {
	// Reconstructing `@table Schema [...]` is only safe to re-parse when the
	// referenced schema's `@struct` definition is also present in the
	// emitted text — i.e. only under [Options.IncludeSchemas]. Without it,
	// a data-only emission that used `@table` syntax would fail to re-parse
	// with UnknownStruct, breaking the round-trip property.
	if !e.opts.IncludeSchemas || len(items) == 0 {
		return "", false
	}

	for _, item := range items {
		if item.Kind() != value.KindObject {
			return "", false
		}
	}

	names := e.doc.SchemaNames()
	sort.Strings(names)

	for _, name := range names {
		schema, _ := e.doc.Schema(name)
		if schemaMatchesAll(schema, items) {
			return name, true
		}
	}

	return "", false
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
			if !obj.Has(field.Name) && !field.Nullable {
				return false
			}
		}
	}

	return true
}

func (e *emitter) writeObject(b *strings.Builder, obj *value.Object) {
	b.WriteByte('{')

	first := true

	obj.Range(func(key string, v value.Value) bool {
		if !first {
			b.WriteString(e.comma())
		}

		first = false

		emitName(b, key)
		b.WriteString(e.colon())
		e.writeValue(b, v)

		return true
	})

	b.WriteByte('}')
}

func (e *emitter) writeMap(b *strings.Builder, entries []value.MapEntry) {
	b.WriteString("@map {")

	for i, entry := range entries {
		if i > 0 {
			b.WriteString(e.comma())
		}

		e.writeMapKey(b, entry.Key)
		b.WriteString(e.colon())
		e.writeValue(b, entry.Value)
	}

	b.WriteByte('}')
}

func (e *emitter) writeMapKey(b *strings.Builder, key value.Value) {
	if key.Kind() == value.KindString {
		emitName(b, key.Str())

		return
	}

	e.writeValue(b, key)
}
