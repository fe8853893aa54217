package shapeval

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromJSON decodes a JSON document into an engine-ready value. Numbers decode
// as json.Number so integer inputs survive without precision loss; the
// integer and real kinds normalize them during validation.
func FromJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("shapeval: decode json: %w", err)
	}
	return v, nil
}

// FromYAML decodes a YAML document into an engine-ready value.
func FromYAML(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("shapeval: decode yaml: %w", err)
	}
	return v, nil
}
