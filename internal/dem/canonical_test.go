package dem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"zebra": 1,
		"alpha": "x",
		"mid":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"x","mid":true,"zebra":1}`, string(data))
}

func TestMarshalCanonical_Nested(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"entries": []any{
			map[string]any{"kind": "hyperedge_detected", "detectors": []int{0, 1, 2}},
		},
		"run_id": "run-1",
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"entries":[{"detectors":[0,1,2],"kind":"hyperedge_detected"}],"run_id":"run-1"}`,
		string(data))
}

func TestMarshalCanonical_IntSlice(t *testing.T) {
	data, err := MarshalCanonical([]int{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "[3,1,2]", string(data))
}

func TestMarshalCanonical_RejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(0.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = MarshalCanonical(map[string]any{"p": 0.1})
	require.Error(t, err)
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)
}

func TestMarshalCanonical_RejectsUnsupportedTypes(t *testing.T) {
	_, err := MarshalCanonical([]string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical("<a> & <b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a> & <b>"`, string(data))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// U+0065 U+0301 ("e" + combining acute) normalizes to the precomposed
	// U+00E9, so both spellings produce byte-identical output.
	decomposed, err := MarshalCanonical("cafe\u0301")
	require.NoError(t, err)
	precomposed, err := MarshalCanonical("caf\u00e9")
	require.NoError(t, err)
	assert.Equal(t, precomposed, decomposed)
	assert.Equal(t, "\"caf\u00e9\"", string(decomposed))
}

func TestMarshalCanonical_EscapesControlCharacters(t *testing.T) {
	data, err := MarshalCanonical("line1\nline2")
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2"`, string(data))
}
