// internal/genai/template.go
package genai

import "strings"

// RenderTemplate substitutes lead placeholders into an operator-supplied
// template. Unknown placeholders are left in place for the operator to catch
// during review.
func RenderTemplate(template string, lead map[string]string) string {
	out := template
	for key, value := range lead {
		if value == "" {
			value = "<unknown>"
		}
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// LeadPlaceholders builds the substitution set for one lead.
func LeadPlaceholders(email, businessName, website string) map[string]string {
	return map[string]string{
		"email":         email,
		"business_name": businessName,
		"website":       website,
	}
}
