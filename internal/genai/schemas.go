// internal/genai/schemas.go
package genai

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Provider responses are validated against these schemas before anything is
// read out of them.

const validationResultSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"email":  {"type": "string", "minLength": 3},
			"status": {"type": "string", "enum": ["valid", "risky", "invalid"]},
			"reason": {"type": "string"}
		},
		"required": ["email", "status"],
		"additionalProperties": true
	}
}`

const draftContentSchema = `{
	"type": "object",
	"properties": {
		"subject": {"type": "string", "minLength": 1},
		"body":    {"type": "string", "minLength": 1}
	},
	"required": ["subject", "body"],
	"additionalProperties": true
}`

func validateAgainstSchema(schemaJSON, document string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema mismatch: %s", strings.Join(msgs, "; "))
	}
	return nil
}
