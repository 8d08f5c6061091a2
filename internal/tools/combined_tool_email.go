package tools

import (
	"fmt"

	"github.com/olm-ai/olm/pkg/models"
)

type generateAndEmailTool struct {
	gen Generator
}

// NewGenerateAndEmail returns the generate_and_email tool: generate content
// on a topic via the backing LLM, then send it as a mock email.
func NewGenerateAndEmail(gen Generator) models.LLMTool {
	return generateAndEmailTool{gen: gen}
}

func (g generateAndEmailTool) Call(input models.Input) (string, error) {
	topic, err := input.String("topic")
	if err != nil {
		return "", err
	}
	to, err := input.String("to")
	if err != nil {
		return "", err
	}
	subject, err := input.String("subject")
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Generate appropriate content for: %v", topic)
	content, err := g.gen(prompt, "You are a helpful assistant that generates content for emails.")
	if err != nil {
		return "", fmt.Errorf("failed to generate content for email: %w", err)
	}
	return fmt.Sprintf("Generated content and sent mock email to %v.\n\n%v", to, mockEmail(to, subject, content)), nil
}

func (g generateAndEmailTool) Specification() models.Specification {
	return models.Specification{
		Name:        "generate_and_email",
		Description: "Generate content based on a prompt and send it as a mock email",
		Category:    CategoryCombined,
		Inputs: SchemaFromParams([]Param{
			{
				Name:        "topic",
				Description: "The topic to generate content for",
			},
			{
				Name:        "to",
				Description: "The recipient email address",
			},
			{
				Name:        "subject",
				Description: "The email subject line",
			},
		}),
	}
}
