package agent

import (
	"context"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/olm-ai/olm/internal/conversation"
	"github.com/olm-ai/olm/internal/llm"
	"github.com/olm-ai/olm/internal/tools"
	"github.com/olm-ai/olm/pkg/models"
)

// stubClient replays queued responses and records what it was asked.
type stubClient struct {
	responses []llm.Response
	err       error
	calls     []stubCall
}

type stubCall struct {
	messages []models.Message
	tools    []models.ToolEntry
}

func (s *stubClient) Chat(ctx context.Context, messages []models.Message, toolSchema []models.ToolEntry) (llm.Response, error) {
	s.calls = append(s.calls, stubCall{messages: messages, tools: toolSchema})
	if s.err != nil {
		return llm.Response{}, s.err
	}
	if len(s.responses) == 0 {
		return llm.Response{Message: models.Message{Role: models.RoleAssistant, Content: "out of responses"}}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func assistantReply(content string, calls ...models.Call) llm.Response {
	return llm.Response{Message: models.Message{
		Role:      models.RoleAssistant,
		Content:   content,
		ToolCalls: calls,
	}}
}

type recordingTool struct {
	name    string
	reply   string
	invoked int
}

func (r *recordingTool) Call(input models.Input) (string, error) {
	r.invoked++
	return r.reply, nil
}

func (r *recordingTool) Specification() models.Specification {
	return models.Specification{Name: r.name}
}

func newTestAgent(client ChatClient, registry *tools.Registry) (*Agent, *conversation.Manager) {
	conv := conversation.NewManager(10)
	return New(client, registry, conv, 5), conv
}

func TestProcessMessage_plainAnswer(t *testing.T) {
	client := &stubClient{responses: []llm.Response{assistantReply("hi there")}}
	a, conv := newTestAgent(client, tools.NewRegistry())

	got := a.ProcessMessage(context.Background(), "hello")

	testboil.FailTestIfDiff(t, got, "hi there")
	history := conv.History()
	if len(history) != 2 {
		t.Fatalf("expected user + assistant in history, got %d entries", len(history))
	}
	testboil.FailTestIfDiff(t, history[0].Role, models.RoleUser)
	testboil.FailTestIfDiff(t, history[1].Role, models.RoleAssistant)
	if len(client.calls) != 1 {
		t.Fatalf("expected a single LLM call, got %d", len(client.calls))
	}
	if client.calls[0].messages[0].Role != models.RoleSystem {
		t.Error("expected system prompt first in LLM context")
	}
}

func TestProcessMessage_toolChain(t *testing.T) {
	registry := tools.NewRegistry()
	tool := &recordingTool{name: "get_answer", reply: "42"}
	registry.Register(tool)

	client := &stubClient{responses: []llm.Response{
		assistantReply("", models.Call{Function: models.FunctionCall{Name: "get_answer"}}),
		assistantReply("the answer is 42"),
	}}
	a, conv := newTestAgent(client, registry)

	got := a.ProcessMessage(context.Background(), "what is the answer?")

	testboil.FailTestIfDiff(t, got, "the answer is 42")
	if tool.invoked != 1 {
		t.Errorf("expected tool to run once, ran %d times", tool.invoked)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected 2 LLM calls, got %d", len(client.calls))
	}
	if len(client.calls[0].tools) != 1 {
		t.Error("expected tool schema on the first call")
	}
	if client.calls[1].tools != nil {
		t.Error("expected no tool schema on the continuation call")
	}

	continuation := client.calls[1].messages
	last := continuation[len(continuation)-1]
	testboil.FailTestIfDiff(t, last.Role, models.RoleTool)
	testboil.FailTestIfDiff(t, last.Content, "42")
	testboil.FailTestIfDiff(t, last.ToolName, "get_answer")

	var roles []string
	for _, msg := range conv.History() {
		roles = append(roles, msg.Role)
	}
	want := []string{models.RoleUser, models.RoleAssistant, models.RoleTool, models.RoleAssistant}
	if len(roles) != len(want) {
		t.Fatalf("expected history roles %v, got %v", want, roles)
	}
	for i := range want {
		testboil.FailTestIfDiff(t, roles[i], want[i])
	}
}

func TestProcessMessage_partialToolFailure(t *testing.T) {
	registry := tools.NewRegistry()
	working := &recordingTool{name: "works", reply: "fine"}
	registry.Register(working)

	client := &stubClient{responses: []llm.Response{
		assistantReply("",
			models.Call{Function: models.FunctionCall{Name: "missing_tool"}},
			models.Call{Function: models.FunctionCall{Name: "works"}},
		),
		assistantReply("done"),
	}}
	a, conv := newTestAgent(client, registry)

	got := a.ProcessMessage(context.Background(), "do both")

	testboil.FailTestIfDiff(t, got, "done")
	if working.invoked != 1 {
		t.Error("expected the working tool to run despite the failing sibling")
	}
	var toolMsgs []models.Message
	for _, msg := range conv.History() {
		if msg.Role == models.RoleTool {
			toolMsgs = append(toolMsgs, msg)
		}
	}
	if len(toolMsgs) != 2 {
		t.Fatalf("expected 2 tool messages, got %d", len(toolMsgs))
	}
	testboil.AssertStringContains(t, toolMsgs[0].Content, "Tool execution failed:")
	testboil.AssertStringContains(t, toolMsgs[0].Content, "not found")
	testboil.FailTestIfDiff(t, toolMsgs[1].Content, "fine")
}

func TestProcessMessage_llmError(t *testing.T) {
	client := &stubClient{err: llm.ConnectionError{Endpoint: "http://localhost:11434/api/chat"}}
	a, conv := newTestAgent(client, tools.NewRegistry())

	got := a.ProcessMessage(context.Background(), "hello")

	testboil.AssertStringContains(t, got, "LLM Error:")
	testboil.AssertStringContains(t, got, "cannot connect to LLM")
	history := conv.History()
	last := history[len(history)-1]
	testboil.FailTestIfDiff(t, last.Role, models.RoleError)
}

func TestProcessMessage_timeoutMapping(t *testing.T) {
	client := &stubClient{err: llm.TimeoutError{Timeout: 30 * time.Second}}
	a, conv := newTestAgent(client, tools.NewRegistry())

	got := a.ProcessMessage(context.Background(), "hello")

	testboil.AssertStringContains(t, got, "30 seconds")
	var errorEntries int
	for _, msg := range conv.History() {
		if msg.Role == models.RoleError {
			errorEntries++
		}
	}
	if errorEntries != 1 {
		t.Errorf("expected exactly 1 error-role entry, got %d", errorEntries)
	}
}

func TestProcessMessage_toolRoundLimit(t *testing.T) {
	registry := tools.NewRegistry()
	tool := &recordingTool{name: "loop_tool", reply: "again"}
	registry.Register(tool)

	loopReply := assistantReply("", models.Call{Function: models.FunctionCall{Name: "loop_tool"}})
	client := &stubClient{responses: []llm.Response{
		loopReply, loopReply, loopReply, loopReply,
	}}
	conv := conversation.NewManager(50)
	a := New(client, registry, conv, 2)

	got := a.ProcessMessage(context.Background(), "loop forever")

	testboil.AssertStringContains(t, got, "Tool call limit of 2 rounds reached")
	if tool.invoked != 2 {
		t.Errorf("expected exactly 2 tool rounds, got %d", tool.invoked)
	}
	history := conv.History()
	last := history[len(history)-1]
	testboil.FailTestIfDiff(t, last.Role, models.RoleError)
}
