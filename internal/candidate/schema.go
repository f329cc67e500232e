package candidate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// ErrInvalidDocument marks a candidate document that does not match the schema.
var ErrInvalidDocument = errors.New("invalid candidate document")

// SchemaError lists the schema violations of one document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidDocument, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrInvalidDocument }

// ValidateDocument checks raw JSON holding one candidate object or an array of them.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate candidate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Problems: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Problems = append(schemaErr.Problems, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return schemaErr
}

// Decode validates data and returns the candidates it holds.
func Decode(data []byte) ([]*Attributes, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var list []*Attributes
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode candidates: %w", err)
		}
		return list, nil
	}

	var single Attributes
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	return []*Attributes{&single}, nil
}

// LoadFile reads and decodes a candidate document from path.
func LoadFile(path string) ([]*Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates file: %w", err)
	}
	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}
