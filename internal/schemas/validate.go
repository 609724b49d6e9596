// Package schemas validates persisted JSON artifacts (job records, the
// candidate profile, task status files) against embedded JSON Schemas.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"embed"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Known schema names.
const (
	JobSchema     = "job"
	ProfileSchema = "profile"
	StatusSchema  = "status"
)

// ValidationError reports the individual field failures from a schema check.
type ValidationError struct {
	Schema string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s schema validation failed: %s", e.Schema, strings.Join(e.Errors, "; "))
}

// Validate checks raw JSON bytes against the named embedded schema.
func Validate(name string, data []byte) error {
	schemaData, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation error for %q: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return ve
}
