package jsonbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/jsonbridge"
)

func TestInferSchemas_UniformObjectsSynthesizeStruct(t *testing.T) {
	t.Parallel()

	src := `{"employees": [
		{"id": 1, "name": "Alice", "active": true},
		{"id": 2, "name": "Bob", "active": false}
	]}`

	doc, err := jsonbridge.FromJSON([]byte(src))
	require.NoError(t, err)

	jsonbridge.InferSchemas(doc)

	schema, ok := doc.Schema("employee")
	require.True(t, ok)
	require.Equal(t, 3, schema.FieldCount())

	idField, ok := schema.FieldByName("id")
	require.True(t, ok)
	assert.Equal(t, "int", idField.Type)
	assert.False(t, idField.Nullable)
}

func TestInferSchemas_NullableFieldDetected(t *testing.T) {
	t.Parallel()

	src := `{"rows": [{"a": 1, "b": "x"}, {"a": 2, "b": null}]}`

	doc, err := jsonbridge.FromJSON([]byte(src))
	require.NoError(t, err)

	jsonbridge.InferSchemas(doc)

	schema, ok := doc.Schema("row")
	require.True(t, ok)

	b, ok := schema.FieldByName("b")
	require.True(t, ok)
	assert.True(t, b.Nullable)
}

func TestInferSchemas_WidensIntAndFloat(t *testing.T) {
	t.Parallel()

	src := `{"points": [{"v": 1}, {"v": 2.5}]}`

	doc, err := jsonbridge.FromJSON([]byte(src))
	require.NoError(t, err)

	jsonbridge.InferSchemas(doc)

	schema, ok := doc.Schema("point")
	require.True(t, ok)

	v, ok := schema.FieldByName("v")
	require.True(t, ok)
	assert.Equal(t, "float", v.Type)
}

func TestInferSchemas_NestedObjectRecursesIntoOwnSchema(t *testing.T) {
	t.Parallel()

	src := `{"orders": [
		{"id": 1, "customer": {"name": "Alice"}},
		{"id": 2, "customer": {"name": "Bob"}}
	]}`

	doc, err := jsonbridge.FromJSON([]byte(src))
	require.NoError(t, err)

	jsonbridge.InferSchemas(doc)

	order, ok := doc.Schema("order")
	require.True(t, ok)

	customer, ok := order.FieldByName("customer")
	require.True(t, ok)
	assert.Equal(t, "customer", customer.Type)

	_, ok = doc.Schema("customer")
	assert.True(t, ok, "nested object gets its own registered schema")
}

func TestInferSchemas_NonUniformKeysFallsBackToPlainArray(t *testing.T) {
	t.Parallel()

	src := `{"mixed": [{"a": 1}, {"b": 2}]}`

	doc, err := jsonbridge.FromJSON([]byte(src))
	require.NoError(t, err)

	jsonbridge.InferSchemas(doc)

	_, ok := doc.Schema("mixed")
	assert.False(t, ok)

	v, ok := doc.Section("mixed")
	require.True(t, ok)
	assert.Len(t, v.Array(), 2)
}
