package agent

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/olm-ai/olm/internal/tools"
)

// PromptBuilder renders the system prompt from the registered tool set.
type PromptBuilder struct {
	registry *tools.Registry
}

func NewPromptBuilder(registry *tools.Registry) *PromptBuilder {
	return &PromptBuilder{registry: registry}
}

// fallbackPrompt is used when there are no tools to enumerate, so that the
// agent always has a usable system prompt.
const fallbackPrompt = "You are a helpful AI assistant with access to tools. Use tools when needed and provide clear responses."

const promptPolicy = `CORE PRINCIPLES:
- When users request actions that require tools, select and use the appropriate tools
- Tool results are the source of truth - never fabricate information
- If a tool fails, explain the error clearly to the user
- Maintain conversation context and topic awareness

TOOL SELECTION STRATEGY:
- Use the most appropriate tool for each task
- Prefer combined tools for multi-step operations
- Use specific tools for focused tasks

OPERATION GUIDELINES:
- **Single operations**: Use individual tools for simple tasks
- **Multiple operations**: Prefer combined tools when available (more reliable)
- **File operations**: Use current directory '.' when path not specified
- **Content handling**: Use exact content from tool results when saving files

RESPONSE STYLE:
- Interpret tool outputs clearly in natural language
- Summarize what was accomplished
- Suggest logical next steps when appropriate
- Be concise and friendly
- Format responses suitable for CLI output unless specified otherwise

Choose tools based on what the user actually requests, not assumptions.`

// BuildSystemPrompt enumerates the registered tools grouped by category,
// alphabetically, followed by the static policy sections. It never fails:
// with nothing to enumerate it degrades to a generic prompt.
func (p *PromptBuilder) BuildSystemPrompt() string {
	categories := p.registry.ByCategory()
	if len(categories) == 0 {
		return fallbackPrompt
	}

	names := maps.Keys(categories)
	sort.Strings(names)

	var sections []string
	for _, category := range names {
		var toolLines []string
		for _, spec := range categories[category] {
			toolLines = append(toolLines, fmt.Sprintf("  - %v: %v", spec.Name, spec.Description))
		}
		sections = append(sections, fmt.Sprintf("**%v Tools:**\n%v", titleCase(category), strings.Join(toolLines, "\n")))
	}

	return fmt.Sprintf(`You are an AI assistant with access to tools organized by category:

%v

%v`, strings.Join(sections, "\n\n"), promptPolicy)
}

// titleCase turns 'some_category' into 'Some Category'.
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
