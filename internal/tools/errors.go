package tools

import (
	"fmt"
)

// NotFoundError is returned when a call names a tool which isn't registered.
type NotFoundError struct {
	Tool string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("tool '%v' not found", e.Tool)
}

// ValidationError is returned when a tool rejected its arguments, for
// example a missing required field or a type mismatch.
type ValidationError struct {
	Tool string
	Err  error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("tool '%v' validation failed: %v", e.Tool, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

// ExecutionError wraps any other failure raised while running a tool,
// including recovered panics.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("tool '%v' execution failed: %v", e.Tool, e.Err)
}

func (e ExecutionError) Unwrap() error { return e.Err }
