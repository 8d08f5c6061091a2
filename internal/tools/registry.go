package tools

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/olm-ai/olm/pkg/models"
)

// Registry is a threadsafe storage for LLMTools. It keeps registration
// order, since the schema payload sent to the model is ordered.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]entry
	order []string
	debug bool
}

type entry struct {
	tool models.LLMTool
	spec models.Specification
}

// NewRegistry returns an empty tools registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]entry),
		debug: misc.Truthy(os.Getenv("DEBUG")),
	}
}

// Register a tool, filling in any metadata it left out: empty descriptions
// become '<name>()', empty categories are inferred from the name and a nil
// schema becomes an empty object schema. Registering an already present name
// overwrites the old tool with a warning, keeping its position.
func (r *Registry) Register(t models.LLMTool) {
	spec := t.Specification()
	if spec.Description == "" {
		spec.Description = spec.Name + "()"
	}
	if spec.Category == "" {
		spec.Category = Categorize(spec.Name)
	}
	if spec.Inputs == nil {
		spec.Inputs = &models.InputSchema{}
	}
	spec.Inputs.Patch()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[spec.Name]; exists {
		ancli.PrintWarn(fmt.Sprintf("tool '%v' already registered, overwriting\n", spec.Name))
	} else {
		r.order = append(r.order, spec.Name)
	}
	if r.debug {
		ancli.Okf("adding tool to registry, name: %v, category: %v\n", spec.Name, spec.Category)
	}
	r.tools[spec.Name] = entry{tool: t, spec: spec}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (models.LLMTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tools[name]
	return e.tool, ok
}

// Execute runs the tool registered under name with the given input. No
// schema validation happens before the call, the schema is advisory metadata
// for the model. Errors are classified into NotFoundError, ValidationError
// and ExecutionError; a panicking tool surfaces as an ExecutionError.
func (r *Registry) Execute(name string, input models.Input) (out string, err error) {
	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", NotFoundError{Tool: name}
	}
	defer func() {
		if rec := recover(); rec != nil {
			out = ""
			err = ExecutionError{Tool: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	if input == nil {
		input = models.Input{}
	}
	out, callErr := e.tool.Call(input)
	if callErr != nil {
		var argErr models.ArgumentError
		if errors.As(callErr, &argErr) {
			return "", ValidationError{Tool: name, Err: callErr}
		}
		return "", ExecutionError{Tool: name, Err: callErr}
	}
	return out, nil
}

// Invoke runs the call and gathers both error and output in the same
// string, so a failed tool looks like a tool which reported failure.
func (r *Registry) Invoke(call models.Call) string {
	name := call.Function.Name
	if name == "" {
		return "ERROR: missing tool name in tool call"
	}
	if misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.Noticef("Invoke call: %v", debug.IndentedJsonFmt(call))
	}
	out, err := r.Execute(name, call.Function.Arguments)
	if err != nil {
		return fmt.Sprintf("Tool execution failed: %v", err)
	}
	return out
}

// ByCategory returns the registered tool specifications grouped by category,
// registration-ordered within each group.
func (r *Registry) ByCategory() map[string][]models.Specification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	categories := make(map[string][]models.Specification)
	for _, name := range r.order {
		spec := r.tools[name].spec
		categories[spec.Category] = append(categories[spec.Category], spec)
	}
	return categories
}

// Schema returns the tools payload for the model, one function entry per
// registered tool, in registration order.
func (r *Registry) Schema() []models.ToolEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema := make([]models.ToolEntry, 0, len(r.order))
	for _, name := range r.order {
		schema = append(schema, models.ToolEntry{
			Type:     "function",
			Function: r.tools[name].spec,
		})
	}
	return schema
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the amount of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset removes all registered tools. Primarily used for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.tools = make(map[string]entry)
	r.order = nil
	r.mu.Unlock()
}
