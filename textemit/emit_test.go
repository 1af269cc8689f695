package textemit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/parser"
	"go.jacobcolvin.com/tlbx/textemit"
	"go.jacobcolvin.com/tlbx/value"
)

func mustParse(t *testing.T, src string) *value.Document {
	t.Helper()

	doc, err := parser.ParseString(src)
	require.NoError(t, err)

	return doc
}

func TestEmit_PrimitivesRoundTrip(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"string":     `s: "hello world"`,
		"int":        `n: -7`,
		"uint":       `n: 18446744073709551615`,
		"float":      `f: 3.5`,
		"bool true":  `b: true`,
		"bool false": `b: false`,
		"null":       `v: null`,
		"bytes":      `v: b"deadbeef"`,
		"timestamp":  `t: 2024-01-15T10:30:00+02:00`,
		"nan":        `v: NaN`,
		"inf":        `v: inf`,
		"neg inf":    `v: -inf`,
	}

	for name, src := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, src)
			out := textemit.Emit(doc, textemit.Pretty)

			reparsed := mustParse(t, out)

			for _, key := range doc.Keys() {
				orig, _ := doc.Section(key)
				got, ok := reparsed.Section(key)
				require.True(t, ok)

				if orig.Kind() == value.KindFloat && math.IsNaN(orig.Float()) {
					assert.True(t, math.IsNaN(got.Float()))

					continue
				}

				assert.Equal(t, orig, got)
			}
		})
	}
}

func TestEmit_ArrayAndObjectRoundTrip(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `a: [1, 2, 3], o: {x: 1, y: "two"}`)
	out := textemit.Emit(doc, textemit.Pretty)
	reparsed := mustParse(t, out)

	a, _ := doc.Section("a")
	a2, ok := reparsed.Section("a")
	require.True(t, ok)
	assert.Equal(t, a.Array(), a2.Array())

	o, _ := doc.Section("o")
	o2, ok := reparsed.Section("o")
	require.True(t, ok)
	assert.Equal(t, o.Object().Keys(), o2.Object().Keys())

	x, _ := o2.Object().Get("x")
	assert.Equal(t, int64(1), x.Int())

	y, _ := o2.Object().Get("y")
	assert.Equal(t, "two", y.Str())
}

func TestEmit_TaggedAndRefRoundTrip(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "!origin: {x: 0, y: 0}\nv: :Celsius 21.5\na: !origin")
	out := textemit.Emit(doc, textemit.Pretty)
	reparsed := mustParse(t, out)

	v, _ := doc.Section("v")
	v2, ok := reparsed.Section("v")
	require.True(t, ok)
	assert.Equal(t, v, v2)

	a, _ := doc.Section("a")
	a2, ok := reparsed.Section("a")
	require.True(t, ok)
	assert.Equal(t, a, a2)

	ref, ok := reparsed.Ref("origin")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, ref.Object().Keys())

	x, _ := ref.Object().Get("x")
	assert.Zero(t, x.Int())
}

func TestEmit_MapRoundTrip(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `m: @map {a: 1, 2: "two"}`)
	out := textemit.Emit(doc, textemit.Pretty)
	reparsed := mustParse(t, out)

	m, _ := doc.Section("m")
	m2, ok := reparsed.Section("m")
	require.True(t, ok)
	assert.Equal(t, m, m2)
}

func TestEmit_StructTableWithSchemasRoundTripsPlaceholders(t *testing.T) {
	t.Parallel()

	src := `@struct Employee (id: int, name: string, email: string?, active: bool)
employees: @table Employee [(1, "Alice", "a@x", true), (2, "Bob", ~, false), (3, "Carol", null, true)]`

	doc := mustParse(t, src)
	out := textemit.Emit(doc, textemit.WithSchemas)

	reparsed := mustParse(t, out)

	schema, ok := reparsed.Schema("Employee")
	require.True(t, ok)
	assert.Equal(t, 4, schema.FieldCount())

	v, _ := doc.Section("employees")
	v2, ok := reparsed.Section("employees")
	require.True(t, ok)
	require.Len(t, v2.Array(), len(v.Array()))

	row0 := v2.Array()[0].Object()
	name0, _ := row0.Get("name")
	assert.Equal(t, "Alice", name0.Str())

	row2 := v2.Array()[1].Object()
	assert.False(t, row2.Has("email"))

	row3 := v2.Array()[2].Object()
	email3, ok := row3.Get("email")
	require.True(t, ok)
	assert.True(t, email3.IsNull())
}

func TestEmit_DataOnlyNeverEmitsTableForSchemaBoundArrays(t *testing.T) {
	t.Parallel()

	src := `@struct Point (x: int, y: int)
points: @table Point [(1, 2), (3, 4)]`

	doc := mustParse(t, src)
	out := textemit.Emit(doc, textemit.Pretty) // IncludeSchemas is false

	assert.NotContains(t, out, "@table")

	reparsed := mustParse(t, out)

	v, _ := doc.Section("points")
	v2, ok := reparsed.Section("points")
	require.True(t, ok)
	require.Len(t, v2.Array(), len(v.Array()))

	p0 := v2.Array()[0].Object()
	x0, _ := p0.Get("x")
	y0, _ := p0.Get("y")
	assert.Equal(t, int64(1), x0.Int())
	assert.Equal(t, int64(2), y0.Int())
}

func TestEmit_CompactRemovesInsignificantWhitespace(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `a: 1, b: 2`)
	out := textemit.Emit(doc, textemit.Compact)

	assert.Equal(t, `a:1,b:2`, out)
}

func TestEmit_CompactFloatsDropsFractionOnWholeNumbers(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `f: 4.0`)
	out := textemit.Emit(doc, textemit.Options{CompactFloats: true})

	assert.Equal(t, `f: 4`, out)

	reparsed := mustParse(t, out)

	v, ok := reparsed.Section("f")
	require.True(t, ok)
	assert.Equal(t, value.KindInt, v.Kind(), "compact-floats is documented as lossy: whole floats re-parse as Int")
}

func TestEmit_FloatWithFractionIsUnaffectedByCompactFloats(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `f: 4.5`)
	out := textemit.Emit(doc, textemit.Options{CompactFloats: true})

	reparsed := mustParse(t, out)

	v, ok := reparsed.Section("f")
	require.True(t, ok)
	assert.Equal(t, value.KindFloat, v.Kind())
	assert.InDelta(t, 4.5, v.Float(), 1e-9)
}

func TestEmit_KeyQuotingRules(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `"has space": 1, "true": 2, plain: 3`)
	out := textemit.Emit(doc, textemit.Pretty)

	assert.Contains(t, out, `"has space"`)
	assert.Contains(t, out, `"true"`)
	assert.Contains(t, out, `plain: 3`)
}

func TestEmit_Deterministic(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `a: 1, b: [1, 2], c: {x: true}`)

	out1 := textemit.Emit(doc, textemit.Pretty)
	out2 := textemit.Emit(doc, textemit.Pretty)

	assert.Equal(t, out1, out2)
}

func TestEmit_UnionWithSchemas(t *testing.T) {
	t.Parallel()

	src := `@union Shape { circle(r: float), empty() }
s: "circle"`

	doc := mustParse(t, src)
	out := textemit.Emit(doc, textemit.WithSchemas)

	assert.Contains(t, out, "@union Shape { circle(r: float), empty() }")

	reparsed := mustParse(t, out)
	u, ok := reparsed.Union("Shape")
	require.True(t, ok)
	assert.Len(t, u.Variants, 2)
}
