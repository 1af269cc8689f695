package jsonbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/jsonbridge"
	"go.jacobcolvin.com/tlbx/value"
)

func TestToJSON_ScalarShapes(t *testing.T) {
	t.Parallel()

	doc := value.NewDocument()
	doc.SetSection("bytes", value.NewBytes([]byte{0xde, 0xad, 0xbe, 0xef}))
	doc.SetSection("ts", value.NewTimestamp(1705314600000, 120))
	doc.SetSection("nan", value.NewFloat(func() float64 { var z float64; return z / z }()))
	doc.SetSection("ref", value.NewRef("origin"))
	doc.SetSection("tagged", value.NewTagged("Celsius", value.NewFloat(21.5)))

	out, err := jsonbridge.ToJSON(doc, jsonbridge.Options{})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"bytes":"0xdeadbeef"`)
	assert.Contains(t, s, `"ts":"2024-01-15T10:30:00.000Z"`)
	assert.Contains(t, s, `"nan":null`)
	assert.Contains(t, s, `"ref":{"$ref":"origin"}`)
	assert.Contains(t, s, `"tagged":{"$tag":"Celsius","$value":21.5}`)
}

func TestToJSON_MapEmitsAsPairArray(t *testing.T) {
	t.Parallel()

	doc := value.NewDocument()
	doc.SetSection("m", value.NewMap([]value.MapEntry{
		{Key: value.NewString("a"), Value: value.NewInt(1)},
		{Key: value.NewInt(2), Value: value.NewString("two")},
	}))

	out, err := jsonbridge.ToJSON(doc, jsonbridge.Options{})
	require.NoError(t, err)

	assert.Contains(t, string(out), `"m":[["a",1],[2,"two"]]`)
}

func TestToJSON_RootArray(t *testing.T) {
	t.Parallel()

	doc := value.NewDocument()
	doc.SetRootArray(true)
	doc.SetSection("0", value.NewInt(1))
	doc.SetSection("1", value.NewInt(2))

	out, err := jsonbridge.ToJSON(doc, jsonbridge.Options{})
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(out))
}

func TestToJSON_PrettyIndents(t *testing.T) {
	t.Parallel()

	doc := value.NewDocument()
	doc.SetSection("a", value.NewInt(1))

	compact, err := jsonbridge.ToJSON(doc, jsonbridge.Options{Pretty: false})
	require.NoError(t, err)

	pretty, err := jsonbridge.ToJSON(doc, jsonbridge.Options{Pretty: true})
	require.NoError(t, err)

	assert.NotContains(t, string(compact), "\n")
	assert.Contains(t, string(pretty), "\n")
}

func TestFromJSON_ToJSON_RoundTripsPlainShapes(t *testing.T) {
	t.Parallel()

	src := []byte(`{"a":1,"b":"two","c":[1,2,3],"d":{"x":true}}`)

	doc, err := jsonbridge.FromJSON(src)
	require.NoError(t, err)

	out, err := jsonbridge.ToJSON(doc, jsonbridge.Options{})
	require.NoError(t, err)

	assert.JSONEq(t, string(src), string(out))
}
