// Package schemas checks LLM output against embedded JSON Schemas. Results are
// advisory: findings are shown to the user but never block storage or rendering.
package schemas

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/career-navigator/internal/shape"
)

// Schema names.
const (
	Skills       = "skills"
	CareerPaths  = "career_paths"
	LearningPlan = "learning_plan"
)

// listKeys names the wrapper field unwrapped before checking list schemas.
var listKeys = map[string]string{
	CareerPaths:  "paths",
	LearningPlan: "recommendations",
}

//go:embed defs/*.schema.json
var defs embed.FS

var (
	mu    sync.Mutex
	cache = map[string]*gojsonschema.Schema{}
)

// Finding is a single schema violation at a field path.
type Finding struct {
	Field   string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []Finding
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Names lists the embedded schemas.
func Names() []string {
	entries, err := defs.ReadDir("defs")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".schema.json"))
	}
	sort.Strings(names)
	return names
}

// Load returns the compiled schema for name.
func Load(name string) (*gojsonschema.Schema, error) {
	mu.Lock()
	defer mu.Unlock()

	if s, ok := cache[name]; ok {
		return s, nil
	}
	data, err := defs.ReadFile("defs/" + name + ".schema.json")
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema not found", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema does not compile", Cause: err}
	}
	cache[name] = s
	return s, nil
}

// Validate checks a decoded JSON document against the named schema.
func Validate(name string, document any) error {
	s, err := Load(name)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "document could not be loaded", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]Finding, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, Finding{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// Check returns the findings for v against the named schema. Raw fallbacks
// have nothing to check. List schemas accept either the bare list or the list
// under its wrapper key.
func Check(name string, v shape.Value) []Finding {
	if v.Kind() == shape.KindRaw || v.IsZero() {
		return nil
	}
	if key, ok := listKeys[name]; ok {
		if inner, ok := v.Field(key); ok {
			v = inner
		}
	}

	err := Validate(name, v.Document())
	switch e := err.(type) {
	case nil:
		return nil
	case *ValidationError:
		return e.Errors
	default:
		return []Finding{{Field: "(schema)", Message: err.Error()}}
	}
}
