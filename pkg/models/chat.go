package models

import (
	"time"
)

// Roles used throughout the conversation history. The error role is internal
// bookkeeping only and is never projected into LLM context.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
	RoleError     = "error"
)

// Message is one turn in a conversation. ToolCalls is set on assistant
// messages which requested tools, ToolName on tool messages to identify
// which tool produced the content.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	ToolCalls []Call    `json:"tool_calls,omitempty"`
	ToolName  string    `json:"tool_name,omitempty"`
}
