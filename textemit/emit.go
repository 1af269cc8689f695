package textemit

import (
	"sort"
	"strings"

	"go.jacobcolvin.com/tlbx/value"
)

// emitter carries shared state across one [Emit] call.
type emitter struct {
	b    strings.Builder
	opts Options
	doc  *value.Document
}

// Emit renders doc to its text form under opts.
func Emit(doc *value.Document, opts Options) string {
	e := &emitter{opts: opts, doc: doc}

	var items []string

	if opts.IncludeSchemas {
		for _, name := range doc.SchemaNames() {
			s, _ := doc.Schema(name)
			items = append(items, e.renderStruct(s))
		}

		for _, name := range doc.UnionNames() {
			u, _ := doc.Union(name)
			items = append(items, e.renderUnion(u))
		}
	}

	if doc.RootArray() {
		items = append(items, "@root-array")
	}

	refNames := doc.RefNames()
	sort.Strings(refNames)

	for _, name := range refNames {
		v, _ := doc.Ref(name)
		items = append(items, e.renderRefDef(name, v))
	}

	doc.RangeSections(func(key string, v value.Value) bool {
		items = append(items, e.renderPair(key, v))

		return true
	})

	sep := ",\n"
	if opts.Compact {
		sep = ","
	}

	return strings.Join(items, sep)
}

func (e *emitter) renderPair(key string, v value.Value) string {
	var b strings.Builder

	emitName(&b, key)
	b.WriteString(e.colon())
	e.writeValue(&b, v)

	return b.String()
}

func (e *emitter) renderRefDef(name string, v value.Value) string {
	var b strings.Builder

	b.WriteByte('!')
	emitName(&b, name)
	b.WriteString(e.colon())
	e.writeValue(&b, v)

	return b.String()
}

// colon returns the key/value separator for the active whitespace mode.
func (e *emitter) colon() string {
	if e.opts.Compact {
		return ":"
	}

	return ": "
}

// comma returns the element separator for the active whitespace mode.
func (e *emitter) comma() string {
	if e.opts.Compact {
		return ","
	}

	return ", "
}
