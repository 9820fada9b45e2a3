package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"window-display-workers/pkg/registry"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Value   interface{} `json:"value,omitempty"`
}

// Summary joins every error as "field: message".
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Fields lists the distinct offending fields in sorted order.
func (r *ValidationResult) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.Errors {
		if !seen[e.Field] {
			seen[e.Field] = true
			out = append(out, e.Field)
		}
	}
	sort.Strings(out)
	return out
}

// Values maps each offending field to the value it was given. Missing
// fields have no entry.
func (r *ValidationResult) Values() map[string]interface{} {
	out := make(map[string]interface{})
	for _, e := range r.Errors {
		if e.Value == nil {
			continue
		}
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Value
		}
	}
	return out
}

// Validator checks job variables against the input schema of each
// registered activity. Schemas are compiled once.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("invalid input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// Has reports whether taskType has a compiled schema.
func (v *Validator) Has(taskType string) bool {
	_, ok := v.schemas[taskType]
	return ok
}

// Validate checks raw job variables. A task type without a schema is valid.
func (v *Validator) Validate(taskType, variables string) (*ValidationResult, error) {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}
	return v.validate(taskType, gojsonschema.NewStringLoader(variables))
}

// ValidateInput checks an already decoded document.
func (v *Validator) ValidateInput(taskType string, input map[string]interface{}) (*ValidationResult, error) {
	if input == nil {
		input = map[string]interface{}{}
	}
	return v.validate(taskType, gojsonschema.NewGoLoader(input))
}

func (v *Validator) validate(taskType string, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}, nil
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
			Value:   valueOf(desc),
		})
	}
	return out, nil
}

const rootField = "(root)"

// fieldOf names the offending property. Missing required properties are
// reported against the parent, so the property name is taken from details.
func fieldOf(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == rootField {
				return prop
			}
			return field + "." + prop
		}
	}
	return field
}

func valueOf(desc gojsonschema.ResultError) interface{} {
	if desc.Type() == "required" {
		return nil
	}
	return desc.Value()
}
