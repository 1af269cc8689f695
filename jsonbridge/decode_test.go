package jsonbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/jsonbridge"
	"go.jacobcolvin.com/tlbx/value"
)

func TestFromJSON_ObjectRootPreservesSectionOrder(t *testing.T) {
	t.Parallel()

	doc, err := jsonbridge.FromJSON([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, doc.Keys())
	assert.False(t, doc.RootArray())
}

func TestFromJSON_ArrayRootSetsRootArrayFlag(t *testing.T) {
	t.Parallel()

	doc, err := jsonbridge.FromJSON([]byte(`[10, 20, 30]`))
	require.NoError(t, err)

	require.True(t, doc.RootArray())
	assert.Equal(t, []string{"0", "1", "2"}, doc.Keys())

	v, ok := doc.Section("1")
	require.True(t, ok)
	assert.Equal(t, int64(20), v.Int())
}

func TestFromJSON_NestedObjectKeyOrderPreserved(t *testing.T) {
	t.Parallel()

	doc, err := jsonbridge.FromJSON([]byte(`{"o": {"z": 1, "a": 2}}`))
	require.NoError(t, err)

	v, ok := doc.Section("o")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, v.Object().Keys())
}

func TestFromJSON_NumberClassification(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		json string
		kind value.Kind
	}{
		"small int":                   {"5", value.KindInt},
		"negative int":                {"-7", value.KindInt},
		"i64 max":                     {"9223372036854775807", value.KindInt},
		"beyond i64 max":              {"18446744073709551615", value.KindUInt},
		"exact float":                 {"3.5", value.KindFloat},
		"non-canonical trailing zero": {"2.0", value.KindJsonNumber},
		"huge precise int":            {"123456789012345678901234567890", value.KindJsonNumber},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := jsonbridge.FromJSON([]byte(`{"v": ` + tc.json + `}`))
			require.NoError(t, err)

			v, ok := doc.Section("v")
			require.True(t, ok)
			assert.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestFromJSON_RejectsScalarRoot(t *testing.T) {
	t.Parallel()

	_, err := jsonbridge.FromJSON([]byte(`5`))
	require.Error(t, err)
}
