package tools

import (
	"fmt"
	"strings"

	"github.com/olm-ai/olm/pkg/models"
)

const todoSystemMessage = "You are a helpful assistant that generates TODO lists."

type generateTodoTool struct {
	gen Generator
}

// NewGenerateTodo returns the generate_todo tool, which asks the backing
// LLM to turn a description into a numbered TODO list.
func NewGenerateTodo(gen Generator) models.LLMTool {
	return generateTodoTool{gen: gen}
}

func (g generateTodoTool) Call(input models.Input) (string, error) {
	content, err := input.String("content")
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Generate a TODO list for: %v\nFormat as a numbered list.", content)
	todo, err := g.gen(prompt, todoSystemMessage)
	if err != nil {
		return "", fmt.Errorf("failed to generate TODO list: %w", err)
	}
	return strings.TrimSpace(todo), nil
}

func (g generateTodoTool) Specification() models.Specification {
	return models.Specification{
		Name:        "generate_todo",
		Description: "Generate a TODO list from a description",
		Category:    CategoryGeneration,
		Inputs: SchemaFromParams([]Param{
			{
				Name:        "content",
				Description: "The description to generate a TODO list for",
			},
		}),
	}
}
