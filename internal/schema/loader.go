package schema

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

// Parse decodes and validates a schema document
func Parse(data []byte) (*Schema, error) {
	var s Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	if err := s.index(); err != nil {
		return nil, errors.NewSchemaInvalidError(err.Error())
	}
	return &s, nil
}

// Load reads a schema file
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSchemaNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read schema: %s", path), err)
	}

	s, err := Parse(data)
	if err != nil {
		if errors.CodeOf(err) != "" {
			return nil, err
		}
		return nil, errors.NewSchemaUnmarshalError(path, err)
	}
	return s, nil
}

// Default returns the embedded schema
func Default() *Schema {
	s, err := Parse(defaultSchemaYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded schema is invalid: %v", err))
	}
	return s
}

// DefaultYAML returns the embedded schema document
func DefaultYAML() []byte {
	out := make([]byte, len(defaultSchemaYAML))
	copy(out, defaultSchemaYAML)
	return out
}
