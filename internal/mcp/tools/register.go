package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "graphtable_render",
		Description: "Render a table of related records for a subject. Runs the graph query (cached per input signature) and returns the normalized display state: columns, rows, truncation, and configuration or error messages. Incomplete inputs return an unconfigured state listing the missing fields.",
	}, ToolRender(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "graphtable_refresh",
		Description: "Force a re-query for a set of inputs, bypassing the result cache even when the inputs are unchanged. Returns the fresh display state and the observed state transitions.",
	}, ToolRefresh(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "graphtable_columns",
		Description: "Derive a column schema from explicit column_config or from sample rows. A usable config wins verbatim; an unusable one falls back to derivation from the first sample row.",
	}, ToolColumns(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "graphtable_describe",
		Description: "Describe the table shape for a set of inputs as a JSON Schema for one row, resolving columns from config or from queried data.",
	}, ToolDescribe(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "graphtable_profile",
		Description: "Profile the queried rows per field: presence, nulls, distinct values, and agreement with the first-row inferred type. Diagnostic only; rendering always types columns from the first row.",
	}, ToolProfile(d))
}
