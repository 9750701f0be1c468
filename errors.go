package jsonschema

import "errors"

// === Schema compilation errors ===
var (
	// ErrInvalidSchema is returned when a schema document is not valid JSON,
	// or parses to something other than a JSON object or boolean.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrEmptyEnum is returned when an "enum" keyword's array is empty.
	ErrEmptyEnum = errors.New("enum must not be empty")

	// ErrMissingConstValue is returned when a "const" keyword is present
	// without an accompanying value.
	ErrMissingConstValue = errors.New("const requires a value")

	// ErrEmptyCombinator is returned when "allOf", "anyOf", or "oneOf" is
	// present with an empty array.
	ErrEmptyCombinator = errors.New("combinator array must not be empty")

	// ErrUnresolvableRootRef is returned when the root schema's own $ref
	// cannot be resolved at compile time.
	ErrUnresolvableRootRef = errors.New("could not resolve root reference")

	// ErrRegexPattern is returned when a "pattern" keyword fails to compile
	// as a regular expression at a point where the caller asked for strict
	// validation (see CompileOption WithStrictPatterns).
	ErrRegexPattern = errors.New("invalid regular expression pattern")
)

// === Reference resolution errors ===
var (
	// ErrReferenceResolution is returned when a $ref URI cannot be resolved
	// against the root schema.
	ErrReferenceResolution = errors.New("reference resolution failed")

	// ErrJSONPointerSegmentNotFound is returned when a JSON-Pointer segment
	// inside a $ref does not name an existing schema location.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")
)

// === Parsing errors ===
var (
	// ErrInvalidJSON is returned when instance or schema text fails to parse.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrDuplicateKey is returned when a JSON object literal repeats a key.
	ErrDuplicateKey = errors.New("duplicate object key")

	// ErrUnexpectedToken is returned by the JSON tokenizer on malformed input.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// === Parameter / lifecycle errors ===
var (
	// ErrNilValidator is returned when an operation is given a nil Validator.
	ErrNilValidator = errors.New("validator is nil")

	// ErrNilParam is returned when a required argument is nil.
	ErrNilParam = errors.New("required parameter is nil")
)

// === Content keyword errors ===
var (
	// ErrUnsupportedContentEncoding names a contentEncoding value with no
	// registered decoder.
	ErrUnsupportedContentEncoding = errors.New("unsupported content encoding")

	// ErrUnsupportedContentMediaType names a contentMediaType value with no
	// registered decoder.
	ErrUnsupportedContentMediaType = errors.New("unsupported content media type")
)

// Status is the stable result code returned by the public façade
// (spec §6.1). Ordinals are part of the API contract and must not change.
type Status int

const (
	// StatusSuccess means validation passed with no errors.
	StatusSuccess Status = iota
	// StatusInvalidSchema means schema compilation failed.
	StatusInvalidSchema
	// StatusInvalidJSON means the instance text did not parse.
	StatusInvalidJSON
	// StatusValidationFailed means the instance parsed but violated the schema.
	StatusValidationFailed
	// StatusMemoryError means an allocation failed.
	StatusMemoryError
	// StatusInvalidParam means a required argument was nil or malformed.
	StatusInvalidParam
)

// String renders the status the way callers log or assert against.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusInvalidSchema:
		return "InvalidSchema"
	case StatusInvalidJSON:
		return "InvalidJson"
	case StatusValidationFailed:
		return "ValidationFailed"
	case StatusMemoryError:
		return "MemoryError"
	case StatusInvalidParam:
		return "InvalidParam"
	default:
		return "Unknown"
	}
}
