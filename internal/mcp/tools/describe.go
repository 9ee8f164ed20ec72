package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacell/graphtable/pkg/table"
)

// DescribeInput is the input for graphtable_describe.
type DescribeInput struct {
	TableInputs
}

// DescribeOutput is the output for graphtable_describe.
type DescribeOutput struct {
	Columns []table.Column `json:"columns,omitzero"`
	Schema  any            `json:"schema,omitempty"` // JSON Schema for one row of the table
}

// ToolDescribe resolves the column schema for a set of inputs and renders it
// as a JSON Schema describing one row. Complete inputs query the graph (via
// the cache) so the derived shape reflects real data; config-only calls work
// without querying.
func ToolDescribe(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeInput) (*sdkmcp.CallToolResult, DescribeOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeInput) (*sdkmcp.CallToolResult, DescribeOutput, error) {
		in := d.TriggerInputs(input.TableInputs)

		var rows []table.Row
		if in.Eligible() {
			outcome := d.Fetcher.Fetch(ctx, in, false)
			if outcome.Err != nil {
				return nil, DescribeOutput{}, WrapDataAPIError(outcome.Err)
			}
			if outcome.Envelope.Success {
				rows = outcome.Envelope.Data
			}
		} else if in.ColumnConfig == "" {
			return nil, DescribeOutput{}, ErrInvalidInput("incomplete inputs and no column_config; nothing to describe")
		}

		columns := d.Deriver.Derive(in.ColumnConfig, rows)

		schema, err := ToAny(table.TableSchema(columns))
		if err != nil {
			return nil, DescribeOutput{}, err
		}

		return nil, DescribeOutput{Columns: columns, Schema: schema}, nil
	}
}
