// internal/genai/generator.go
package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"outreach-engine/internal/common/logger"
	"outreach-engine/internal/models"
)

const generatorSystemPrompt = `You write short, specific cold-outreach emails ` +
	`about SEO problems found on a prospect's website. Personalize using the ` +
	`business name, website and notes provided. Stay under 150 words, no ` +
	`placeholders, no markdown. Respond with a JSON object only: ` +
	`{"subject": "...", "body": "..."}`

// Generator produces one subject/body pair per lead. In MANUAL mode it
// renders the operator templates locally; in AI_CUSTOM mode it asks the
// provider and falls back to the rendered templates when the response fails
// the schema check.
type Generator struct {
	client *Client
	logger logger.Logger
}

func NewGenerator(client *Client, log logger.Logger) *Generator {
	return &Generator{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "draft-generator"}),
	}
}

// GenerateDraft produces content for a single lead. An error is returned only
// for an outright provider failure; malformed provider output degrades to the
// template content.
func (g *Generator) GenerateDraft(ctx context.Context, lead models.Lead, senderIdentity, subjectTemplate, bodyTemplate string, mode models.CampaignMode) (models.DraftContent, error) {
	placeholders := LeadPlaceholders(lead.Email, lead.BusinessName, lead.Website)
	templated := models.DraftContent{
		Subject: RenderTemplate(subjectTemplate, placeholders),
		Body:    RenderTemplate(bodyTemplate, placeholders),
	}

	if mode != models.ModeAICustom {
		return templated, nil
	}

	user := fmt.Sprintf(
		"Sender: %s\nBusiness: %s\nWebsite: %s\nNotes: %s\nSubject direction: %s\nBody direction: %s",
		senderIdentity, lead.BusinessName, lead.Website, lead.SupplementaryNotes,
		subjectTemplate, bodyTemplate,
	)

	raw, err := g.client.complete(ctx, generatorSystemPrompt, user)
	if err != nil {
		return models.DraftContent{}, err
	}

	doc := stripCodeFence(raw)
	if err := validateAgainstSchema(draftContentSchema, doc); err != nil {
		g.logger.Warn("falling back to template content", map[string]interface{}{
			"recipient": lead.Email,
			"error":     err.Error(),
		})
		return templated, nil
	}

	var content models.DraftContent
	if err := json.Unmarshal([]byte(doc), &content); err != nil {
		g.logger.Warn("falling back to template content", map[string]interface{}{
			"recipient": lead.Email,
			"error":     err.Error(),
		})
		return templated, nil
	}

	return content, nil
}
