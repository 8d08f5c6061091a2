// Package agent drives the tool-calling loop: send context to the model,
// dispatch any requested tools, feed results back, repeat until the model
// answers in plain text.
package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/olm-ai/olm/internal/conversation"
	"github.com/olm-ai/olm/internal/llm"
	"github.com/olm-ai/olm/internal/tools"
	"github.com/olm-ai/olm/pkg/models"
)

// ChatClient is the LLM round-trip the agent depends on. Satisfied by
// llm.Client, stubbed in tests.
type ChatClient interface {
	Chat(ctx context.Context, messages []models.Message, tools []models.ToolEntry) (llm.Response, error)
}

// Agent orchestrates one user turn at a time. Not safe for concurrent
// turns: history and registry are owned by the single active turn.
type Agent struct {
	client        ChatClient
	registry      *tools.Registry
	conv          *conversation.Manager
	prompts       *PromptBuilder
	maxToolRounds int
	debug         bool
}

// New returns an agent wired to its collaborators. maxToolRounds bounds the
// amount of tool-dispatch rounds within one turn, so a model which keeps
// requesting tools can't loop forever.
func New(client ChatClient, registry *tools.Registry, conv *conversation.Manager, maxToolRounds int) *Agent {
	return &Agent{
		client:        client,
		registry:      registry,
		conv:          conv,
		prompts:       NewPromptBuilder(registry),
		maxToolRounds: maxToolRounds,
		debug:         misc.Truthy(os.Getenv("DEBUG")),
	}
}

// ProcessMessage runs one full user turn and returns the text to show the
// user. It never returns an error or panics past this boundary: LLM
// failures and unexpected panics become error-role history entries and the
// turn's result text.
func (a *Agent) ProcessMessage(ctx context.Context, userInput string) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("Unexpected error: %v", rec)
			ancli.PrintErr(msg + "\n")
			a.conv.Add(models.Message{Role: models.RoleError, Content: msg})
			out = msg
		}
	}()

	a.conv.Add(models.Message{Role: models.RoleUser, Content: userInput})

	systemPrompt := a.prompts.BuildSystemPrompt()
	contextMsgs := a.conv.Context(systemPrompt)
	schema := a.registry.Schema()

	if a.debug {
		ancli.PrintOK(fmt.Sprintf("processing user message, length: %v, tools: %v\n",
			len(userInput), len(schema)))
	}

	// Tools are only offered on the first call of the turn, continuation
	// calls go without them.
	resp, err := a.client.Chat(ctx, contextMsgs, schema)
	if err != nil {
		return a.failTurn(fmt.Sprintf("LLM Error: %v", err))
	}

	rounds := 0
	for len(resp.Message.ToolCalls) > 0 {
		if rounds >= a.maxToolRounds {
			return a.failTurn(fmt.Sprintf(
				"Tool call limit of %v rounds reached, ending turn", a.maxToolRounds))
		}
		rounds++

		calls := resp.Message.ToolCalls
		a.conv.Add(models.Message{
			Role:      models.RoleAssistant,
			Content:   resp.Message.Content,
			ToolCalls: calls,
		})
		ancli.Noticef("executing %v tool call(s)\n", len(calls))

		// A failing tool becomes a tool-role message carrying the error
		// text, it never aborts its siblings.
		for _, call := range calls {
			ancli.Okf("%v\n", call.PrettyPrint())
			result := a.registry.Invoke(call)
			name := call.Function.Name
			if name == "" {
				name = "unknown"
			}
			toolMsg := models.Message{
				Role:     models.RoleTool,
				Content:  result,
				ToolName: name,
			}
			contextMsgs = append(contextMsgs, toolMsg)
			a.conv.Add(toolMsg)
		}

		resp, err = a.client.Chat(ctx, contextMsgs, nil)
		if err != nil {
			return a.failTurn(fmt.Sprintf("LLM Error: %v", err))
		}
	}

	a.conv.Add(models.Message{Role: models.RoleAssistant, Content: resp.Message.Content})
	return resp.Message.Content
}

// failTurn records msg as an error-role entry and makes it the turn's
// user-visible result. The turn ends, the process continues.
func (a *Agent) failTurn(msg string) string {
	ancli.PrintErr(msg + "\n")
	a.conv.Add(models.Message{Role: models.RoleError, Content: msg})
	return msg
}
