package jsonschema

import (
	"encoding/base64"
	"fmt"

	goyaml "github.com/goccy/go-yaml"
	gojson "github.com/goccy/go-json"
)

// evalContent implements the supplemented contentEncoding/contentMediaType/
// contentSchema keyword (SPEC_FULL §4), grounded on original_source's
// ks_base64.c codec and the dispatch-priority style of the rest of the
// compiler/evaluator pair. A string instance is decoded, optionally parsed
// as a media type, and — if contentSchema is present — the parsed value is
// evaluated against it. Without a contentMediaType nothing is parsed, so
// contentSchema is not applied. Decode failures are reported as ordinary validation errors, not
// panics: a malformed payload is a validation failure, not a bug.
func evalContent(n *ContentNode, raw string, ctx *evalContext) {
	payload := []byte(raw)

	if n.Encoding != "" {
		decoded, err := decodeContent(n.Encoding, raw)
		if err != nil {
			ctx.fail(newError(fmt.Sprintf("contentEncoding %q: %v", n.Encoding, err)))
			return
		}
		payload = decoded
	}

	if n.MediaType == "" {
		return
	}

	parsed, err := parseContentMediaType(n.MediaType, payload)
	if err != nil {
		ctx.fail(newError(fmt.Sprintf("contentMediaType %q: %v", n.MediaType, err)))
		return
	}

	if n.Schema != nil && parsed != nil {
		evaluate(n.Schema, parsed, ctx)
	}
}

func decodeContent(encoding, raw string) ([]byte, error) {
	switch encoding {
	case "base64":
		return base64.StdEncoding.DecodeString(raw)
	default:
		return nil, ErrUnsupportedContentEncoding
	}
}

func parseContentMediaType(mediaType string, payload []byte) (*Value, error) {
	switch mediaType {
	case "application/json":
		var raw any
		if err := gojson.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		return ParseValue(payload)
	case "application/yaml", "text/yaml":
		var raw any
		if err := goyaml.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		return valueFromYAML(raw), nil
	default:
		return nil, ErrUnsupportedContentMediaType
	}
}

// valueFromYAML converts goccy/go-yaml's generic decode result (maps,
// slices, and scalars) into our Value tree, so a YAML content payload can
// be validated with the same evaluator as JSON.
func valueFromYAML(raw any) *Value {
	switch v := raw.(type) {
	case nil:
		return Null
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float64:
		return Number(v)
	case []any:
		items := make([]*Value, len(v))
		for i, item := range v {
			items[i] = valueFromYAML(item)
		}
		return Array(items...)
	case map[string]any:
		obj := NewObject()
		for k, item := range v {
			obj.Set(k, valueFromYAML(item))
		}
		return obj
	case map[any]any:
		obj := NewObject()
		for k, item := range v {
			obj.Set(fmt.Sprintf("%v", k), valueFromYAML(item))
		}
		return obj
	default:
		return String(fmt.Sprintf("%v", v))
	}
}
