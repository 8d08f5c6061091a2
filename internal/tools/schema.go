package tools

import (
	"github.com/olm-ai/olm/pkg/models"
)

// Param is a declarative tool parameter. It replaces signature reflection:
// tools state their parameters in a table and SchemaFromParams derives the
// JSON schema from it.
type Param struct {
	Name        string
	Type        string // int, float, bool, list, dict; anything else becomes string
	Description string
	Default     any // nil marks the parameter as required
}

var typeMapping = map[string]string{
	"int":   "integer",
	"float": "number",
	"bool":  "boolean",
	"list":  "array",
	"dict":  "object",
}

// SchemaFromParams derives an object schema from a parameter table. A
// parameter is required iff it has no default value.
func SchemaFromParams(params []Param) *models.InputSchema {
	schema := &models.InputSchema{
		Type:       "object",
		Required:   make([]string, 0, len(params)),
		Properties: make(map[string]models.ParameterObject, len(params)),
	}
	for _, p := range params {
		jsonType, ok := typeMapping[p.Type]
		if !ok {
			jsonType = "string"
		}
		schema.Properties[p.Name] = models.ParameterObject{
			Type:        jsonType,
			Description: p.Description,
			Default:     p.Default,
		}
		if p.Default == nil {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}
