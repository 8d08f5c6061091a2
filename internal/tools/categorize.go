package tools

import (
	"strings"
)

// Tool categories. Used for prompt grouping and the /tools listing.
const (
	CategoryGeneration    = "generation"
	CategoryStorage       = "storage"
	CategorySearch        = "search"
	CategoryRetrieval     = "retrieval"
	CategoryCommunication = "communication"
	CategoryCombined      = "combined"
	CategoryCalculation   = "calculation"
	CategorySecurity      = "security"
	CategoryUtility       = "utility"
)

// categoryRules are checked in order, first match wins. Order matters:
// 'generate_and_email' lands in generation, not combined, unless the tool
// sets its category explicitly.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{CategoryGeneration, []string{"generate"}},
	{CategoryStorage, []string{"save", "write", "store"}},
	{CategorySearch, []string{"search", "find", "query"}},
	{CategoryRetrieval, []string{"read", "list", "get", "fetch"}},
	{CategoryCommunication, []string{"email", "send", "message"}},
	{CategoryCombined, []string{"_and_"}},
	{CategoryCalculation, []string{"calculate", "math", "compute"}},
	{CategorySecurity, []string{"password", "encrypt", "hash"}},
}

// Categorize infers a category from a tool name. Names matching no rule
// land in utility.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryUtility
}
