package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Input is the argument map handed to a tool. Values arrive as whatever the
// remote model produced, so the typed accessors below are deliberately
// tolerant, accepting stringified numbers and json float64:s.
type Input map[string]any

// ArgumentError signals that a tool input was missing or of the wrong type.
// The registry maps it onto its validation failure path.
type ArgumentError struct {
	Field  string
	Reason string
}

func (a ArgumentError) Error() string {
	return fmt.Sprintf("argument '%v' %v", a.Field, a.Reason)
}

// String returns the input under key as a string. Non-string scalars are
// formatted, since models frequently send numbers where text is expected.
func (i Input) String(key string) (string, error) {
	v, ok := i[key]
	if !ok || v == nil {
		return "", ArgumentError{Field: key, Reason: "is required"}
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64, int, bool:
		return fmt.Sprintf("%v", t), nil
	default:
		return "", ArgumentError{Field: key, Reason: fmt.Sprintf("must be a string, got %T", v)}
	}
}

// StringOr is String with a fallback for absent keys.
func (i Input) StringOr(key, fallback string) string {
	if _, ok := i[key]; !ok {
		return fallback
	}
	s, err := i.String(key)
	if err != nil {
		return fallback
	}
	return s
}

// Int returns the input under key as an int, converting json numbers and
// numeric strings.
func (i Input) Int(key string) (int, error) {
	v, ok := i[key]
	if !ok || v == nil {
		return 0, ArgumentError{Field: key, Reason: "is required"}
	}
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, ArgumentError{Field: key, Reason: fmt.Sprintf("must be an integer, got '%v'", t)}
		}
		return n, nil
	default:
		return 0, ArgumentError{Field: key, Reason: fmt.Sprintf("must be an integer, got %T", v)}
	}
}

// Bool returns the input under key as a bool, converting the strings
// 'true'/'false' which some models produce.
func (i Input) Bool(key string) (bool, error) {
	v, ok := i[key]
	if !ok || v == nil {
		return false, ArgumentError{Field: key, Reason: "is required"}
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, ArgumentError{Field: key, Reason: fmt.Sprintf("must be a boolean, got '%v'", t)}
		}
		return b, nil
	default:
		return false, ArgumentError{Field: key, Reason: fmt.Sprintf("must be a boolean, got %T", v)}
	}
}

// Call is a tool invocation request as produced by the model.
type Call struct {
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments Input  `json:"arguments,omitempty"`
}

// PrettyPrint the call, showing name and what input params are used
// in a concise way
func (c Call) PrettyPrint() string {
	paramStr := ""
	i := 0
	lenInp := len(c.Function.Arguments)
	for flag, val := range c.Function.Arguments {
		paramStr += fmt.Sprintf("'%v': '%v'", flag, val)
		if i < lenInp-1 {
			paramStr += ", "
		}
		i++
	}

	return fmt.Sprintf("Call: '%s', inputs: [ %s ]", c.Function.Name, paramStr)
}

func (c Call) JSON() string {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("ERROR: Failed to marshal: %v", err)
	}
	return string(b)
}

// Specification describes a tool to the model. Category is local metadata
// used for prompt grouping and is not part of the wire format.
type Specification struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"-"`
	Inputs      *InputSchema `json:"parameters,omitempty"`
}

// ToolEntry is one element of the tools payload sent to the model.
type ToolEntry struct {
	Type     string        `json:"type"`
	Function Specification `json:"function"`
}

type InputSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]ParameterObject `json:"properties"`
}

// Patch the input schema, padding initialization inconsistencies so the
// payload is always a well-formed object schema.
func (is *InputSchema) Patch() {
	if is.Required == nil {
		is.Required = make([]string, 0)
	}
	if is.Properties == nil {
		is.Properties = make(map[string]ParameterObject)
	}
	if is.Type == "" {
		is.Type = "object"
	}
}

type ParameterObject struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Enum        *[]string `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
}

// LLMTool is a named, schema-described capability which the model may invoke.
type LLMTool interface {
	// Call the tool with the given Input. Returns output from the tool or an
	// error if the call failed. Argument problems should surface as
	// ArgumentError so the registry can classify them.
	Call(Input) (string, error)

	// Specification returns the metadata describing this tool to the model.
	Specification() Specification
}
