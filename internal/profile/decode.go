package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodePatch parses a JSON patch document. Unknown keys and values of the
// wrong shape are dropped; only malformed JSON is an error.
func DecodePatch(data []byte) (*Patch, error) {
	var patch Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode patch: %w", err)
		}
	}
	return &patch, nil
}

// DecodePatchYAML parses a YAML patch document with the same rules as
// DecodePatch. `~` and `null` are explicit nulls.
func DecodePatchYAML(data []byte) (*Patch, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml patch: %w", err)
	}
	return DecodePatchMap(raw)
}

// DecodePatchMap converts a generic nested map into a Patch.
func DecodePatchMap(raw map[string]any) (*Patch, error) {
	if raw == nil {
		return &Patch{}, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode patch map: %w", err)
	}
	return DecodePatch(data)
}

// PatchMap builds the nested map that sets each field to its value. A nil
// value becomes an explicit null.
func PatchMap(values map[Field]any) map[string]any {
	root := make(map[string]any)
	for f, v := range values {
		parts := strings.Split(f.Path(), ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = v
	}
	return root
}

// PatchFor returns a patch that sets the given fields.
func PatchFor(values map[Field]any) (*Patch, error) {
	return DecodePatchMap(PatchMap(values))
}
