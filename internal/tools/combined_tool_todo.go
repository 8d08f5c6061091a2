package tools

import (
	"fmt"
	"strings"

	"github.com/olm-ai/olm/pkg/models"
)

type generateAndSaveTodoTool struct {
	gen Generator
}

// NewGenerateAndSaveTodo returns the generate_and_save_todo tool: LLM-backed
// TODO generation plus a file write in one operation.
func NewGenerateAndSaveTodo(gen Generator) models.LLMTool {
	return generateAndSaveTodoTool{gen: gen}
}

func (g generateAndSaveTodoTool) Call(input models.Input) (string, error) {
	content, err := input.String("content")
	if err != nil {
		return "", err
	}
	filename, err := input.String("filename")
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Generate a TODO list for: %v\nFormat as a numbered list.", content)
	todo, err := g.gen(prompt, todoSystemMessage)
	if err != nil {
		return "", fmt.Errorf("failed to generate TODO list: %w", err)
	}
	todo = strings.TrimSpace(todo)
	if _, err := WriteFile.Call(models.Input{"path": filename, "content": todo}); err != nil {
		return "", fmt.Errorf("failed to save TODO list: %w", err)
	}
	return fmt.Sprintf("Generated TODO list and saved to %v successfully.\n\nContent preview:\n%v", filename, preview(todo, 200)), nil
}

func (g generateAndSaveTodoTool) Specification() models.Specification {
	return models.Specification{
		Name:        "generate_and_save_todo",
		Description: "Generate a TODO list and save it to a file in one operation",
		Category:    CategoryCombined,
		Inputs: SchemaFromParams([]Param{
			{
				Name:        "content",
				Description: "The description to generate a TODO list for",
			},
			{
				Name:        "filename",
				Description: "The filename to save the TODO list to",
			},
		}),
	}
}

// preview returns at most n runes of s, with an ellipsis when truncated.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
