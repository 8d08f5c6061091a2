package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/olm-ai/olm/pkg/models"
)

type SearchAndSaveTool models.Specification

var SearchAndSave = SearchAndSaveTool{
	Name:        "search_and_save",
	Description: "Search for content in files and save the results to a file",
	Category:    CategoryCombined,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "keyword",
			Description: "The keyword to search for in files",
		},
		{
			Name:        "output_file",
			Description: "The filename to save the search results to",
		},
	}),
}

func (s SearchAndSaveTool) Call(input models.Input) (string, error) {
	keyword, err := input.String("keyword")
	if err != nil {
		return "", err
	}
	outputFile, err := input.String("output_file")
	if err != nil {
		return "", err
	}
	matches := searchDir(".", keyword)
	var results string
	if len(matches) > 0 {
		results = fmt.Sprintf("Search results for '%v':\n\n%v", keyword, strings.Join(matches, "\n"))
	} else {
		results = fmt.Sprintf("No matches found for '%v'.", keyword)
	}
	if err := os.WriteFile(outputFile, []byte(results), 0o644); err != nil {
		return "", fmt.Errorf("search completed but failed to save results: %w", err)
	}
	return fmt.Sprintf("Search completed and results saved to %v. Found %v matches.", outputFile, len(matches)), nil
}

func (s SearchAndSaveTool) Specification() models.Specification {
	return models.Specification(SearchAndSave)
}
