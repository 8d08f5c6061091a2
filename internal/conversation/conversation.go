// Package conversation keeps the append-only message history of one agent
// and projects it into LLM context.
package conversation

import (
	"slices"
	"time"

	"github.com/olm-ai/olm/pkg/models"
)

// Manager holds conversation history with soft-bounded retention: once the
// history grows past twice maxHistory it is rewritten to all system
// messages plus the last maxHistory messages. System messages are never
// evicted; evicted messages are gone, not archived.
type Manager struct {
	maxHistory int
	history    []models.Message
}

// NewManager returns an empty history bounded by maxHistory.
func NewManager(maxHistory int) *Manager {
	return &Manager{maxHistory: maxHistory}
}

// Add appends msg to the history, stamping it with the current time if it
// carries none, and applies the retention trim.
func (m *Manager) Add(msg models.Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	m.history = append(m.history, msg)
	m.trim()
}

func (m *Manager) trim() {
	if len(m.history) <= m.maxHistory*2 {
		return
	}
	var kept []models.Message
	for _, msg := range m.history {
		if msg.Role == models.RoleSystem {
			kept = append(kept, msg)
		}
	}
	kept = append(kept, m.history[len(m.history)-m.maxHistory:]...)
	m.history = kept
}

// Context builds the message list for the LLM: the fresh system prompt
// followed by the last maxHistory user/assistant/tool messages. System
// messages already in history are not re-included, the fresh prompt
// replaces them. Error messages are bookkeeping and never sent.
func (m *Manager) Context(systemPrompt string) []models.Message {
	context := make([]models.Message, 0, m.maxHistory+1)
	context = append(context, models.Message{Role: models.RoleSystem, Content: systemPrompt})

	recent := m.history
	if len(recent) > m.maxHistory {
		recent = recent[len(recent)-m.maxHistory:]
	}
	for _, msg := range recent {
		switch msg.Role {
		case models.RoleUser, models.RoleAssistant, models.RoleTool:
			context = append(context, models.Message{
				Role:      msg.Role,
				Content:   msg.Content,
				ToolCalls: msg.ToolCalls,
				ToolName:  msg.ToolName,
			})
		}
	}
	return context
}

// Clear empties the history unconditionally.
func (m *Manager) Clear() {
	m.history = nil
}

// History returns a defensive copy of the full history, never the live
// slice.
func (m *Manager) History() []models.Message {
	return slices.Clone(m.history)
}

// Load replaces the history wholesale, used for session resume.
func (m *Manager) Load(history []models.Message) {
	m.history = slices.Clone(history)
}

// Len returns the amount of messages currently retained.
func (m *Manager) Len() int {
	return len(m.history)
}
