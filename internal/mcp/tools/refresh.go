package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacell/graphtable/internal/render"
	"github.com/datacell/graphtable/internal/trigger"
)

// RefreshInput is the input for graphtable_refresh.
type RefreshInput struct {
	TableInputs
	Title string `json:"title,omitempty" jsonschema:"Display title for the table"`
}

// RefreshOutput is the output for graphtable_refresh.
type RefreshOutput struct {
	RenderState
	Refreshed   bool     `json:"refreshed"`
	Transitions []string `json:"transitions,omitzero"`
}

// ToolRefresh forces a re-query for the given inputs, bypassing the result
// cache even when the inputs are unchanged. The observed state transitions
// are reported so callers can see the single eligibility round trip.
func ToolRefresh(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RefreshInput) (*sdkmcp.CallToolResult, RefreshOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RefreshInput) (*sdkmcp.CallToolResult, RefreshOutput, error) {
		in := d.TriggerInputs(input.TableInputs)

		var transitions []string
		ctrl := d.NewController(trigger.WithObserver(func(s render.State) {
			transitions = append(transitions, string(s.Kind()))
		}))

		state := ctrl.SetInputs(ctx, in)
		if !state.HasRequiredConfig() {
			return nil, RefreshOutput{
				RenderState: renderState(state, input.Title),
				Transitions: transitions,
			}, nil
		}

		transitions = nil
		state = ctrl.Refresh(ctx)

		return nil, RefreshOutput{
			RenderState: renderState(state, input.Title),
			Refreshed:   true,
			Transitions: transitions,
		}, nil
	}
}
