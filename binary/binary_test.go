package binary_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/binary"
	"go.jacobcolvin.com/tlbx/parser"
	"go.jacobcolvin.com/tlbx/value"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}

func encodeAndOpen(t *testing.T, src string, opts binary.EncodeOptions) (*value.Document, *binary.Reader) {
	t.Helper()

	doc, err := parser.ParseString(src)
	require.NoError(t, err)

	out, err := binary.Encode(doc, opts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.tlbx")
	require.NoError(t, writeFile(path, out))

	r, err := binary.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { r.Close() })

	return doc, r
}

func TestEncodeDecode_ScalarSectionsRoundTrip(t *testing.T) {
	t.Parallel()

	src := `a: -7, b: 18446744073709551615, c: 3.5, d: true, e: false, f: null, g: b"deadbeef", h: 2024-01-15T10:30:00+02:00, i: "hello"`

	_, r := encodeAndOpen(t, src, binary.DefaultEncodeOptions)

	tcs := map[string]struct {
		key  string
		kind value.Kind
	}{
		"int":       {"a", value.KindInt},
		"uint":      {"b", value.KindUInt},
		"float":     {"c", value.KindFloat},
		"true":      {"d", value.KindBool},
		"false":     {"e", value.KindBool},
		"null":      {"f", value.KindNull},
		"bytes":     {"g", value.KindBytes},
		"timestamp": {"h", value.KindTimestamp},
		"string":    {"i", value.KindString},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, ok, err := r.Section(tc.key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, v.Kind())
		})
	}

	a, _, _ := r.Section("a")
	assert.Equal(t, int64(-7), a.Int())

	b, _, _ := r.Section("b")
	assert.Equal(t, uint64(18446744073709551615), b.UInt())

	i, _, _ := r.Section("i")
	assert.Equal(t, "hello", i.Str())
}

func TestEncodeDecode_HomogeneousIntArray(t *testing.T) {
	t.Parallel()

	_, r := encodeAndOpen(t, `a: [1, 2, 3, -4]`, binary.DefaultEncodeOptions)

	v, ok, err := r.Section("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, v.Array(), 4)

	for i, want := range []int64{1, 2, 3, -4} {
		assert.Equal(t, want, v.Array()[i].Int())
	}
}

func TestEncodeDecode_HomogeneousStringArray(t *testing.T) {
	t.Parallel()

	_, r := encodeAndOpen(t, `a: ["x", "y", "z"]`, binary.DefaultEncodeOptions)

	v, ok, err := r.Section("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, v.Array(), 3)
	assert.Equal(t, "y", v.Array()[1].Str())
}

func TestEncodeDecode_HeterogeneousArray(t *testing.T) {
	t.Parallel()

	_, r := encodeAndOpen(t, `a: [1, "two", true, null]`, binary.DefaultEncodeOptions)

	v, ok, err := r.Section("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, v.Array(), 4)

	assert.Equal(t, int64(1), v.Array()[0].Int())
	assert.Equal(t, "two", v.Array()[1].Str())
	assert.True(t, v.Array()[2].Bool())
	assert.True(t, v.Array()[3].IsNull())
}

func TestEncodeDecode_ObjectSection(t *testing.T) {
	t.Parallel()

	_, r := encodeAndOpen(t, `o: {x: 1, y: "two", z: true}`, binary.DefaultEncodeOptions)

	v, ok, err := r.Section("o")
	require.NoError(t, err)
	require.True(t, ok)

	x, present := v.Object().Get("x")
	require.True(t, present)
	assert.Equal(t, int64(1), x.Int())

	y, present := v.Object().Get("y")
	require.True(t, present)
	assert.Equal(t, "two", y.Str())
}

func TestEncodeDecode_MapSection(t *testing.T) {
	t.Parallel()

	_, r := encodeAndOpen(t, `m: @map {a: 1, 2: "two"}`, binary.DefaultEncodeOptions)

	v, ok, err := r.Section("m")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, v.Map(), 2)

	assert.Equal(t, "a", v.Map()[0].Key.Str())
	assert.Equal(t, int64(1), v.Map()[0].Value.Int())
	assert.Equal(t, int64(2), v.Map()[1].Key.Int())
	assert.Equal(t, "two", v.Map()[1].Value.Str())
}

func TestEncodeDecode_TaggedSection(t *testing.T) {
	t.Parallel()

	_, r := encodeAndOpen(t, "v: :Celsius 21.5", binary.DefaultEncodeOptions)

	v, ok, err := r.Section("v")
	require.NoError(t, err)
	require.True(t, ok)

	tag, inner := v.Tagged()
	assert.Equal(t, "Celsius", tag)
	assert.InDelta(t, 21.5, inner.Float(), 1e-9)
}

func TestEncodeDecode_StructTableFastPath(t *testing.T) {
	t.Parallel()

	src := `@struct Employee (id: int, name: string, email: string?, active: bool)
employees: @table Employee [(1, "Alice", "a@x", true), (2, "Bob", ~, false), (3, "Carol", null, true)]`

	_, r := encodeAndOpen(t, src, binary.DefaultEncodeOptions)

	schema, ok := r.Schema("Employee")
	require.True(t, ok)
	assert.Equal(t, 4, schema.FieldCount())

	v, ok, err := r.Section("employees")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, v.Array(), 3)

	alice := v.Array()[0].Object()
	name, _ := alice.Get("name")
	assert.Equal(t, "Alice", name.Str())

	bob := v.Array()[1].Object()
	assert.False(t, bob.Has("email"), "nullable field dropped via ~ decodes as absent")

	carol := v.Array()[2].Object()
	email, present := carol.Get("email")
	require.True(t, present, "explicit null on a nullable field decodes present as Null")
	assert.True(t, email.IsNull())
}

func TestEncodeDecode_RootArrayFlagRoundTrips(t *testing.T) {
	t.Parallel()

	doc := value.NewDocument()
	doc.SetRootArray(true)
	doc.SetSection("0", value.NewInt(1))

	out, err := binary.Encode(doc, binary.DefaultEncodeOptions)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.tlbx")
	require.NoError(t, writeFile(path, out))

	r, err := binary.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.True(t, r.RootArray())
}

func TestOpen_RejectsBadMagic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.tlbx")
	require.NoError(t, writeFile(path, make([]byte, 64)))

	_, err := binary.Open(path)
	require.Error(t, err)
}

func TestEncode_CompressionDisabledOption(t *testing.T) {
	t.Parallel()

	doc, err := parser.ParseString(`s: [` + repeat("1, ", 200) + `1]`)
	require.NoError(t, err)

	compressed, err := binary.Encode(doc, binary.DefaultEncodeOptions)
	require.NoError(t, err)

	uncompressed, err := binary.Encode(doc, binary.EncodeOptions{Compress: false})
	require.NoError(t, err)

	assert.Less(t, len(compressed), len(uncompressed))
}

func TestOpenMmap_RoundTrips(t *testing.T) {
	t.Parallel()

	doc, err := parser.ParseString(`a: [1, 2, 3], s: "hello"`)
	require.NoError(t, err)

	out, err := binary.Encode(doc, binary.DefaultEncodeOptions)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.tlbx")
	require.NoError(t, writeFile(path, out))

	r, err := binary.OpenMmap(path)
	require.NoError(t, err)
	defer r.Close()

	v, ok, err := r.Section("s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", v.Str())
}
