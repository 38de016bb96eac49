package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled draft 2020-12 JSON schema.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// CompileSchema compiles source, registering it under name.
func CompileSchema(name string, source []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompileSchema panics when source does not compile. Use it for schemas
// embedded in the binary.
func MustCompileSchema(name string, source []byte) *Schema {
	schema, err := CompileSchema(name, source)
	if err != nil {
		panic(err)
	}
	return schema
}

// Name returns the resource name the schema was compiled under.
func (s *Schema) Name() string { return s.name }

// ValidateJSON decodes raw and validates the result. Malformed JSON is
// reported as a single issue at the document root.
func (s *Schema) ValidateJSON(raw []byte) error {
	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return &Error{Source: s.name, Issues: []Issue{{Field: "#", Message: err.Error()}}, cause: err}
	}
	return s.Validate(document)
}

// Validate checks a document already decoded into generic JSON values.
func (s *Schema) Validate(document any) error {
	err := s.compiled.Validate(document)
	if err == nil {
		return nil
	}
	return &Error{Source: s.name, Issues: Issues(err), cause: err}
}
