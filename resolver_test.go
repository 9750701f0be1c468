package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRefValue_Root(t *testing.T) {
	root, _ := ParseValue([]byte(`{"type": "object"}`))
	got, err := resolveRefValue(root, "#")
	require.NoError(t, err)
	assert.Same(t, root, got)
}

func TestResolveRefValue_Pointer(t *testing.T) {
	root, _ := ParseValue([]byte(`{"defs": {"name": {"type": "string"}}}`))
	got, err := resolveRefValue(root, "#/defs/name")
	require.NoError(t, err)
	assert.Equal(t, KindObject, got.Kind())
	assert.True(t, got.Has("type"))
}

func TestResolveRefValue_ExternalURIUnresolved(t *testing.T) {
	root, _ := ParseValue([]byte(`{}`))
	_, err := resolveRefValue(root, "https://example.com/schema.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferenceResolution)
}

func TestValidator_UnresolvableRootRefIsInvalidSchema(t *testing.T) {
	_, status, err := Create([]byte(`{"$ref": "#/missing"}`))
	assert.Equal(t, StatusInvalidSchema, status)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, ErrUnresolvableRootRef.Error())
}

func TestValidator_UnresolvableNestedRefIsValidationFailure(t *testing.T) {
	v := mustCreate(t, `{"properties": {"child": {"$ref": "#/missing"}}}`)
	status, errs := v.ValidateText([]byte(`{"child": 1}`))
	assert.Equal(t, StatusValidationFailed, status)
	assert.NotNil(t, errs)
}
