package tools

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/olm-ai/olm/pkg/models"
)

type SearchFilesTool models.Specification

var SearchFiles = SearchFilesTool{
	Name:        "search_files",
	Description: "Search for a keyword in all files in the current directory",
	Category:    CategorySearch,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "keyword",
			Description: "The keyword to search for",
		},
	}),
}

func (s SearchFilesTool) Call(input models.Input) (string, error) {
	keyword, err := input.String("keyword")
	if err != nil {
		return "", err
	}
	matches := searchDir(".", keyword)
	if len(matches) == 0 {
		return fmt.Sprintf("No matches found for '%v'.", keyword), nil
	}
	return strings.Join(matches, "\n"), nil
}

func (s SearchFilesTool) Specification() models.Specification {
	return models.Specification(SearchFiles)
}

// searchDir walks root and returns file:line:content matches. Unreadable
// files are skipped.
func searchDir(root, keyword string) []string {
	var matches []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if strings.Contains(line, keyword) {
				matches = append(matches, fmt.Sprintf("%v:%v: %v", path, lineNo, strings.TrimSpace(line)))
			}
		}
		return nil
	})
	return matches
}
