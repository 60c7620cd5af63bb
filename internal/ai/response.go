package ai

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	skillProfileSchema     = mustLoadSchema("skill_profile.json")
	skillSuggestionsSchema = mustLoadSchema("skill_suggestions.json")
	jobMatchSchema         = mustLoadSchema("job_match.json")
)

func mustLoadSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFiles.ReadFile("schemas/" + name)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return schema
}

// Response failure categories.
const (
	CategoryInvalidJSON    = "invalid_json"
	CategorySchemaMismatch = "schema_mismatch"
)

// ResponseError reports model output that could not be trusted.
type ResponseError struct {
	Category string // CategoryInvalidJSON or CategorySchemaMismatch
	Details  []string
	Err      error
}

func (e *ResponseError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s", e.Category, strings.Join(e.Details, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return e.Category
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// cleanJSONBlock removes a markdown code fence around a JSON reply. Models
// often add one even when told not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Drop a language tag such as "json", whether or not a newline follows it.
	if tag := len(text) - len(strings.TrimLeftFunc(text, isTagRune)); tag > 0 {
		rest := strings.TrimLeft(text[tag:], " \t\r")
		if rest == "" || rest[0] == '\n' || rest[0] == '{' || rest[0] == '[' {
			text = rest
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func isTagRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// decodeStrict treats raw as untrusted: it must parse as JSON, validate
// against schema, and decode into out.
func decodeStrict(raw string, schema *gojsonschema.Schema, out any) error {
	clean := cleanJSONBlock(raw)
	if !json.Valid([]byte(clean)) {
		var syntaxErr error = errors.New("response is not valid JSON")
		var probe any
		if err := json.Unmarshal([]byte(clean), &probe); err != nil {
			syntaxErr = err
		}
		return &ResponseError{Category: CategoryInvalidJSON, Err: syntaxErr}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(clean))
	if err != nil {
		return &ResponseError{Category: CategoryInvalidJSON, Err: err}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &ResponseError{Category: CategorySchemaMismatch, Details: details}
	}

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return &ResponseError{Category: CategorySchemaMismatch, Err: err}
	}
	return nil
}

// truncate shortens s to at most n bytes, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
