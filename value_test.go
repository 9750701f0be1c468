package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Scalars(t *testing.T) {
	v, err := ParseValue([]byte(`{"a": 1, "b": [true, null, "x"]}`))
	require.NoError(t, err)

	n := v.Get("a")
	f, ok := n.Float64()
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	arr := v.Get("b")
	assert.Equal(t, 3, arr.Len())
	b, ok := arr.Index(0).Bool()
	assert.True(t, ok)
	assert.True(t, b)
	assert.True(t, arr.Index(1).IsNull())
	s, ok := arr.Index(2).Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestParseValue_DuplicateKeyRejected(t *testing.T) {
	_, err := ParseValue([]byte(`{"a": 1, "a": 2}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestParseValue_UnicodeEscape(t *testing.T) {
	v, err := ParseValue([]byte("\"\\" + "u00e9\""))
	require.NoError(t, err)
	s, _ := v.Str()
	assert.Equal(t, "é", s)
}

func TestParseValue_SurrogatePair(t *testing.T) {
	v, err := ParseValue([]byte("\"\\" + "ud83d\\" + "ude00\""))
	require.NoError(t, err)
	s, _ := v.Str()
	assert.Equal(t, "😀", s)
}

func TestValue_Equal_ObjectOrderIndependent(t *testing.T) {
	a, _ := ParseValue([]byte(`{"x": 1, "y": 2}`))
	b, _ := ParseValue([]byte(`{"y": 2, "x": 1}`))
	assert.True(t, a.Equal(b))
}

func TestValue_Equal_ArrayOrderMatters(t *testing.T) {
	a, _ := ParseValue([]byte(`[1, 2]`))
	b, _ := ParseValue([]byte(`[2, 1]`))
	assert.False(t, a.Equal(b))
}

func TestValue_Pointer(t *testing.T) {
	root, _ := ParseValue([]byte(`{"a": {"b/c": [10, 20]}}`))
	got, err := root.Pointer("/a/b~1c/1")
	require.NoError(t, err)
	f, _ := got.Float64()
	assert.Equal(t, 20.0, f)
}

func TestValue_Pointer_MissingSegment(t *testing.T) {
	root, _ := ParseValue([]byte(`{"a": 1}`))
	_, err := root.Pointer("/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJSONPointerSegmentNotFound)
}

func TestValue_DeepCopy_Independent(t *testing.T) {
	orig := NewObject().Set("a", Number(1))
	cp := orig.DeepCopy()
	orig.Set("a", Number(2))
	f, _ := cp.Get("a").Float64()
	assert.Equal(t, 1.0, f)
}
