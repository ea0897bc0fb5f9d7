package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// NodeDocument is the schema every seed entry must satisfy.
var NodeDocument = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":   map[string]any{"type": "string", "minLength": 1},
		"content": map[string]any{"type": "string"},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required":             []string{"title"},
	"additionalProperties": false,
}

// Validator checks documents against JSON schemas.
// It caches compiled schemas.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that docJSON matches the provided schema.
// The schema can be a map[string]any, a string (JSON), or a struct.
func (v *Validator) Validate(schemaData any, docJSON string) error {
	schema, err := v.compile(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(docJSON))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed:\n- %s", dumpErrors(errs))
}

// ValidateValue marshals doc to JSON and validates it.
func (v *Validator) ValidateValue(schemaData any, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document is not JSON encodable: %w", err)
	}
	return v.Validate(schemaData, string(data))
}

func (v *Validator) compile(schemaData any) (*gojsonschema.Schema, error) {
	var jsonBytes []byte
	if s, ok := schemaData.(string); ok {
		jsonBytes = []byte(s)
	} else {
		b, err := json.Marshal(schemaData)
		if err != nil {
			return nil, err
		}
		jsonBytes = b
	}
	key := string(jsonBytes)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
	if err != nil {
		return nil, err
	}

	v.cache.Store(key, schema)
	return schema, nil
}

func dumpErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0]
	}
	// first 3 only
	truncated := ""
	if len(errs) > 3 {
		truncated = fmt.Sprintf("... and %d more", len(errs)-3)
		errs = errs[:3]
	}
	return strings.Join(errs, "\n- ") + truncated
}
