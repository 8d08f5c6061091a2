// Package models holds the shared data model of olm: chat messages, tool
// calls and tool specifications. It is imported both by the orchestration
// packages under internal/ and by external tool authors, which is why it
// lives under pkg/.
package models
