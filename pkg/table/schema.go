package table

import (
	"encoding/json"
	"fmt"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// columnConfigSchema constrains the serialized column configuration supplied
// by the host: an array of column objects, each naming at least a fieldName.
const columnConfigSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"label": {"type": "string"},
			"fieldName": {"type": "string", "minLength": 1},
			"type": {
				"enum": ["text", "number", "boolean", "date", "date-local", "url", "email", "phone"]
			}
		},
		"required": ["fieldName"]
	}
}`

var compileConfigSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(columnConfigSchema), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling column config schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("columnconfig.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	return compiler.Compile("columnconfig.json")
})

// ParseColumnConfig decodes and validates a serialized column configuration.
// It returns an error for malformed JSON, for values that fail the schema,
// and for duplicate fieldName entries. Callers are expected to treat a
// failure as "no usable config", not as a user-facing error.
func ParseColumnConfig(configJSON string) ([]Column, error) {
	schema, err := compileConfigSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling column config schema: %w", err)
	}

	var value any
	if err := json.Unmarshal([]byte(configJSON), &value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var cols []Column
	if err := json.Unmarshal([]byte(configJSON), &cols); err != nil {
		return nil, fmt.Errorf("decoding columns: %w", err)
	}

	seen := make(map[string]bool, len(cols))
	for i := range cols {
		if seen[cols[i].FieldName] {
			return nil, fmt.Errorf("duplicate fieldName %q", cols[i].FieldName)
		}
		seen[cols[i].FieldName] = true
		if cols[i].Type == "" {
			cols[i].Type = TypeText
		}
	}
	return cols, nil
}

// TableSchema renders a column schema as a JSON Schema describing one row of
// the table, for consumers that want a machine-readable shape.
func TableSchema(columns []Column) *invopop.Schema {
	props := orderedmap.New[string, *invopop.Schema]()
	for _, col := range columns {
		prop := &invopop.Schema{
			Title: col.Label,
		}
		switch col.Type {
		case TypeNumber:
			prop.Type = "number"
		case TypeBoolean:
			prop.Type = "boolean"
		case TypeDate, TypeDateLocal:
			prop.Type = "string"
			prop.Format = "date-time"
		case TypeURL:
			prop.Type = "string"
			prop.Format = "uri"
		case TypeEmail:
			prop.Type = "string"
			prop.Format = "email"
		default:
			prop.Type = "string"
		}
		props.Set(col.FieldName, prop)
	}
	return &invopop.Schema{
		Type:       "object",
		Properties: props,
	}
}
