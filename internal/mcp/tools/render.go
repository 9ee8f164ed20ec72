package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RenderInput is the input for graphtable_render.
type RenderInput struct {
	TableInputs
	Title string `json:"title,omitempty" jsonschema:"Display title for the table"`
}

// RenderOutput is the output for graphtable_render.
type RenderOutput struct {
	RenderState
}

// ToolRender runs the full pipeline for one table: eligibility check, graph
// query (cached per input signature), and result normalization. Incomplete
// configuration and failed queries are reported inside the returned state,
// never as tool errors.
func ToolRender(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderInput) (*sdkmcp.CallToolResult, RenderOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderInput) (*sdkmcp.CallToolResult, RenderOutput, error) {
		ctrl := d.NewController()
		state := ctrl.SetInputs(ctx, d.TriggerInputs(input.TableInputs))
		return nil, RenderOutput{RenderState: renderState(state, input.Title)}, nil
	}
}
