package tools

import (
	"fmt"
	"os"

	"github.com/olm-ai/olm/pkg/models"
)

type readAndSummarizeTool struct {
	gen Generator
}

// NewReadAndSummarize returns the read_and_summarize tool, which reads a
// file, summarizes it through the backing LLM and writes the summary to
// another file.
func NewReadAndSummarize(gen Generator) models.LLMTool {
	return readAndSummarizeTool{gen: gen}
}

func (r readAndSummarizeTool) Call(input models.Input) (string, error) {
	inputFile, err := input.String("input_file")
	if err != nil {
		return "", err
	}
	outputFile, err := input.String("output_file")
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read file %v: %w", inputFile, err)
	}
	prompt := fmt.Sprintf("Please provide a concise summary of the following content:\n\n%v", string(content))
	summary, err := r.gen(prompt, "You are a helpful assistant that creates concise summaries.")
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	out := fmt.Sprintf("Summary of %v:\n\n%v", inputFile, summary)
	if err := os.WriteFile(outputFile, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("failed to save summary: %w", err)
	}
	return fmt.Sprintf("Read %v, generated summary, and saved to %v successfully.", inputFile, outputFile), nil
}

func (r readAndSummarizeTool) Specification() models.Specification {
	return models.Specification{
		Name:        "read_and_summarize",
		Description: "Read a file and generate a summary, saving it to another file",
		Category:    CategoryCombined,
		Inputs: SchemaFromParams([]Param{
			{
				Name:        "input_file",
				Description: "The file to read and summarize",
			},
			{
				Name:        "output_file",
				Description: "The file to save the summary to",
			},
		}),
	}
}
