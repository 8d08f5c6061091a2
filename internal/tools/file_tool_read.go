package tools

import (
	"fmt"
	"os"

	"github.com/olm-ai/olm/pkg/models"
)

type ReadFileTool models.Specification

var ReadFile = ReadFileTool{
	Name:        "read_file",
	Description: "Read the contents of a file",
	Category:    CategoryRetrieval,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "path",
			Description: "The file path to read",
		},
	}),
}

func (r ReadFileTool) Call(input models.Input) (string, error) {
	path, err := input.String("path")
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

func (r ReadFileTool) Specification() models.Specification {
	return models.Specification(ReadFile)
}
