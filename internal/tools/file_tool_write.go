package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olm-ai/olm/pkg/models"
)

type WriteFileTool models.Specification

var WriteFile = WriteFileTool{
	Name:        "write_file",
	Description: "Write content to a file. Creates the file if it doesn't exist, or overwrites it if it does.",
	Category:    CategoryStorage,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "path",
			Description: "The file path to write to",
		},
		{
			Name:        "content",
			Description: "The content to write to the file",
		},
	}),
}

func (w WriteFileTool) Call(input models.Input) (string, error) {
	path, err := input.String("path")
	if err != nil {
		return "", err
	}
	content, err := input.String("content")
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return fmt.Sprintf("Wrote %v bytes to %v successfully.", len(content), path), nil
}

func (w WriteFileTool) Specification() models.Specification {
	return models.Specification(WriteFile)
}
