package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, schema string) *Validator {
	t.Helper()
	v, status, err := Create([]byte(schema))
	require.Equal(t, StatusSuccess, status)
	require.Nil(t, err)
	return v
}

func TestValidator_EmptyObjectMissingRequired(t *testing.T) {
	v := mustCreate(t, `{"type": "object", "required": ["name"]}`)
	status, errs := v.ValidateText([]byte(`{}`))
	assert.Equal(t, StatusValidationFailed, status)
	require.NotNil(t, errs)
	assert.Contains(t, errs.Message, "name")
}

func TestValidator_ExclusiveMinimumZero(t *testing.T) {
	v := mustCreate(t, `{"type": "number", "exclusiveMinimum": 0}`)

	status, errs := v.ValidateText([]byte(`0`))
	assert.Equal(t, StatusValidationFailed, status)
	assert.NotNil(t, errs)

	status, errs = v.ValidateText([]byte(`0.0001`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestValidator_UniqueItems(t *testing.T) {
	v := mustCreate(t, `{"type": "array", "uniqueItems": true}`)

	status, _ := v.ValidateText([]byte(`[1, 2, 2]`))
	assert.Equal(t, StatusValidationFailed, status)

	status, errs := v.ValidateText([]byte(`[1, 2, 3]`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestValidator_StringLengthBounds(t *testing.T) {
	v := mustCreate(t, `{"type": "string", "minLength": 2, "maxLength": 4}`)

	status, _ := v.ValidateText([]byte(`"a"`))
	assert.Equal(t, StatusValidationFailed, status)

	status, _ = v.ValidateText([]byte(`"abcde"`))
	assert.Equal(t, StatusValidationFailed, status)

	status, errs := v.ValidateText([]byte(`"abc"`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestValidator_EnumAndConst(t *testing.T) {
	v := mustCreate(t, `{"enum": ["a", "b", 1]}`)
	status, _ := v.ValidateText([]byte(`"c"`))
	assert.Equal(t, StatusValidationFailed, status)
	status, errs := v.ValidateText([]byte(`"b"`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)

	v = mustCreate(t, `{"const": 42}`)
	status, _ = v.ValidateText([]byte(`41`))
	assert.Equal(t, StatusValidationFailed, status)
	status, errs = v.ValidateText([]byte(`42`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestValidator_RefToSiblingDefinition(t *testing.T) {
	v := mustCreate(t, `{
		"type": "object",
		"properties": {
			"node": {"$ref": "#/properties/target"},
			"target": {"type": "string"}
		}
	}`)
	status, _ := v.ValidateText([]byte(`{"node": "hi", "target": "ok"}`))
	assert.Equal(t, StatusSuccess, status)

	status, errs := v.ValidateText([]byte(`{"node": 5, "target": "ok"}`))
	assert.Equal(t, StatusValidationFailed, status)
	assert.NotNil(t, errs)
}

func TestValidator_RecursiveRefTerminatesOnFiniteInstance(t *testing.T) {
	v := mustCreate(t, `{
		"type": "object",
		"properties": {
			"children": {
				"type": "array",
				"items": {"$ref": "#"}
			}
		}
	}`)
	status, _ := v.ValidateText([]byte(`{"children": [{"children": []}, {"children": [{"children": []}]}]}`))
	assert.Equal(t, StatusSuccess, status)
}

func TestValidator_IfThenElse(t *testing.T) {
	v := mustCreate(t, `{
		"if": {"properties": {"country": {"const": "US"}}},
		"then": {"required": ["zip"]},
		"else": {"required": ["postal"]}
	}`)

	status, _ := v.ValidateText([]byte(`{"country": "US", "zip": "90210"}`))
	assert.Equal(t, StatusSuccess, status)

	status, _ = v.ValidateText([]byte(`{"country": "US"}`))
	assert.Equal(t, StatusValidationFailed, status)

	status, _ = v.ValidateText([]byte(`{"country": "FR", "postal": "75000"}`))
	assert.Equal(t, StatusSuccess, status)
}

func TestValidator_OneOfExactlyOne(t *testing.T) {
	v := mustCreate(t, `{"oneOf": [{"type": "string"}, {"type": "number"}]}`)

	status, _ := v.ValidateText([]byte(`"x"`))
	assert.Equal(t, StatusSuccess, status)

	status, _ = v.ValidateText([]byte(`true`))
	assert.Equal(t, StatusValidationFailed, status)
}

func TestValidator_MultipleOfTolerance(t *testing.T) {
	v := mustCreate(t, `{"type": "number", "multipleOf": 0.1}`)
	status, errs := v.ValidateText([]byte(`0.3`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestValidator_InvalidSchemaRejected(t *testing.T) {
	_, status, err := Create([]byte(`{"enum": []}`))
	assert.Equal(t, StatusInvalidSchema, status)
	assert.NotNil(t, err)
}

func TestValidator_InvalidJSONInstance(t *testing.T) {
	v := mustCreate(t, `{"type": "string"}`)
	status, err := v.ValidateText([]byte(`{not json`))
	assert.Equal(t, StatusInvalidJSON, status)
	assert.NotNil(t, err)
}

func TestValidator_MaxErrorsTruncates(t *testing.T) {
	v := mustCreate(t, `{
		"type": "object",
		"required": ["a", "b", "c", "d", "e"]
	}`)
	v.MaxErrors = 2
	status, errs := v.ValidateText([]byte(`{}`))
	assert.Equal(t, StatusValidationFailed, status)
	count := 0
	for e := errs; e != nil; e = e.Next {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestValidator_AllOfStopsAtFirstFailingChild(t *testing.T) {
	v := mustCreate(t, `{
		"allOf": [
			{"type": "string"},
			{"minLength": 10},
			{"pattern": "^z"}
		]
	}`)
	status, errs := v.ValidateText([]byte(`"abc"`))
	assert.Equal(t, StatusValidationFailed, status)
	require.NotNil(t, errs)

	count := 0
	sawIndexOne := false
	for e := errs; e != nil; e = e.Next {
		count++
		if e.Message == "allOf validation failed on schema 1" {
			sawIndexOne = true
		}
	}
	// The length failure (schema index 1) plus its one index-annotated
	// summary error; the pattern mismatch at index 2 never runs.
	assert.Equal(t, 2, count)
	assert.True(t, sawIndexOne, "expected an allOf summary error naming schema index 1")
}

func TestValidator_AllOfPassesWhenEveryChildPasses(t *testing.T) {
	v := mustCreate(t, `{"allOf": [{"type": "string"}, {"minLength": 1}]}`)
	status, errs := v.ValidateText([]byte(`"ok"`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestCreate_WithStrictPatternsRejectsBadPattern(t *testing.T) {
	_, status, err := Create([]byte(`{"type": "string", "pattern": "(unclosed"}`), WithStrictPatterns())
	assert.Equal(t, StatusInvalidSchema, status)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, ErrRegexPattern.Error())
}

func TestCreate_WithoutStrictPatternsToleratesBadPattern(t *testing.T) {
	v := mustCreate(t, `{"type": "string", "pattern": "(unclosed"}`)
	status, errs := v.ValidateText([]byte(`"anything"`))
	assert.Equal(t, StatusSuccess, status)
	assert.Nil(t, errs)
}

func TestValidator_Localization(t *testing.T) {
	v := mustCreate(t, `{"type": "object"}`)
	localizer, err := NewLocalizer("es")
	require.NoError(t, err)
	v.Localizer = localizer

	status, errs := v.ValidateText([]byte(`"not an object"`))
	assert.Equal(t, StatusValidationFailed, status)
	require.NotNil(t, errs)
	assert.Equal(t, "el valor debe ser un objeto", errs.Message)
}
