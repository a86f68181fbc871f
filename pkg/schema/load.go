package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Parse reads an OpenAPI schema object, in JSON or YAML, into a Node.
func Parse(data []byte) (*Node, error) {
	src, err := ParseOpenAPI(data)
	if err != nil {
		return nil, err
	}
	return FromOpenAPI(src)
}

// ParseOpenAPI reads an OpenAPI schema object, in JSON or YAML.
// YAML is a superset of JSON, so both go through the YAML decoder first.
func ParseOpenAPI(data []byte) (*openapi3.Schema, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	if _, isMap := raw.(map[string]any); !isMap {
		return nil, fmt.Errorf("%w: document is not an object", ErrUnsupportedSchema)
	}

	bts, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}

	res := openapi3.NewSchema()
	if err := res.UnmarshalJSON(bts); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	return res, nil
}

// LoadFile reads a schema file from disk.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
