package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/olm-ai/olm/pkg/models"
)

type ListFilesTool models.Specification

var ListFiles = ListFilesTool{
	Name:        "list_files",
	Description: "List files in a directory",
	Category:    CategoryRetrieval,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "path",
			Description: "The directory path to list files from",
			Default:     ".",
		},
	}),
}

func (l ListFilesTool) Call(input models.Input) (string, error) {
	path := input.StringOr("path", ".")
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("failed to list files: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return strings.Join(names, "\n"), nil
}

func (l ListFilesTool) Specification() models.Specification {
	return models.Specification(ListFiles)
}
