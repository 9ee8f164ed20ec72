package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacell/graphtable/pkg/table"
)

// ColumnsInput is the input for graphtable_columns.
type ColumnsInput struct {
	ColumnConfig string           `json:"column_config,omitempty" jsonschema:"Serialized column schema JSON; wins verbatim when usable"`
	SampleRows   []map[string]any `json:"sample_rows,omitempty" jsonschema:"Sample rows to derive columns from when no usable config is given"`
}

// ColumnsOutput is the output for graphtable_columns.
type ColumnsOutput struct {
	Columns []table.Column `json:"columns,omitzero"`
	Source  string         `json:"source"` // config, rows, or empty
}

// ToolColumns derives a column schema from explicit configuration or from
// sample rows, with the same fallback behavior the render pipeline uses.
func ToolColumns(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ColumnsInput) (*sdkmcp.CallToolResult, ColumnsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ColumnsInput) (*sdkmcp.CallToolResult, ColumnsOutput, error) {
		if input.ColumnConfig == "" && len(input.SampleRows) == 0 {
			return nil, ColumnsOutput{}, ErrInvalidInput("either column_config or sample_rows is required")
		}

		rows, err := rowsFromAny(input.SampleRows)
		if err != nil {
			return nil, ColumnsOutput{}, ErrInvalidInput("sample_rows: " + err.Error())
		}

		source := "empty"
		if input.ColumnConfig != "" {
			if _, err := table.ParseColumnConfig(input.ColumnConfig); err == nil {
				source = "config"
			}
		}

		columns := d.Deriver.Derive(input.ColumnConfig, rows)
		if source != "config" && len(columns) > 0 {
			source = "rows"
		}

		return nil, ColumnsOutput{Columns: columns, Source: source}, nil
	}
}
