package textemit

import (
	"strings"

	"go.jacobcolvin.com/tlbx/value"
)

func (e *emitter) renderStruct(s *value.Schema) string {
	var b strings.Builder

	b.WriteString("@struct ")
	emitName(&b, s.Name)
	b.WriteString(" (")
	e.writeFieldList(&b, s.Fields)
	b.WriteByte(')')

	return b.String()
}

func (e *emitter) renderUnion(u *value.Union) string {
	var b strings.Builder

	b.WriteString("@union ")
	emitName(&b, u.Name)
	b.WriteString(" { ")

	for i, va := range u.Variants {
		if i > 0 {
			b.WriteString(e.comma())
		}

		emitName(&b, va.Name)
		b.WriteByte('(')
		e.writeFieldList(&b, va.Fields)
		b.WriteByte(')')
	}

	b.WriteString(" }")

	return b.String()
}

// writeFieldList renders a struct/variant's field list. A field whose type
// is the default (non-array, non-nullable "string") is written bare;
// every other field spells out its `: type` suffix.
func (e *emitter) writeFieldList(b *strings.Builder, fields []value.Field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(e.comma())
		}

		emitName(b, f.Name)

		if f.Type == "string" && !f.IsArray && !f.Nullable {
			continue
		}

		b.WriteString(e.colon())

		if f.IsArray {
			b.WriteString("[]")
		}

		emitName(b, f.Type)

		if f.Nullable {
			b.WriteByte('?')
		}
	}
}
