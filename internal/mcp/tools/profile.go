package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacell/graphtable/internal/profile"
)

// ProfileInput is the input for graphtable_profile.
type ProfileInput struct {
	TableInputs
}

// ProfileOutput is the output for graphtable_profile.
type ProfileOutput struct {
	Profile *profile.Result `json:"profile,omitempty"`
}

// ToolProfile queries the graph and reports per-field statistics across the
// fetched rows: presence, nulls, distinct values, and how well later rows
// agree with the type inferred from the first occurrence.
func ToolProfile(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ProfileInput) (*sdkmcp.CallToolResult, ProfileOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ProfileInput) (*sdkmcp.CallToolResult, ProfileOutput, error) {
		in := d.TriggerInputs(input.TableInputs)
		if missing := in.MissingFields(); len(missing) > 0 {
			return nil, ProfileOutput{}, ErrInvalidInput("incomplete inputs, missing: " + strings.Join(missing, ", "))
		}

		outcome := d.Fetcher.Fetch(ctx, in, false)
		if outcome.Err != nil {
			return nil, ProfileOutput{}, WrapDataAPIError(outcome.Err)
		}
		if !outcome.Envelope.Success {
			msg := outcome.Envelope.ErrorMessage
			if msg == "" {
				msg = "query failed"
			}
			return nil, ProfileOutput{}, &CodedError{Code: ErrCodeDataAPIError, Message: msg}
		}

		return nil, ProfileOutput{Profile: d.Profiler.Profile(outcome.Envelope.Data)}, nil
	}
}
