package main

import (
	"strings"

	goyaml "github.com/goccy/go-yaml"
	gojson "github.com/goccy/go-json"
)

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

// yamlToJSON decodes YAML into a generic tree with goccy/go-yaml, then
// re-encodes it as JSON with goccy/go-json, so the resulting bytes feed
// straight into jsonschema.ParseValue's grammar.
func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := goyaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return gojson.Marshal(raw)
}
