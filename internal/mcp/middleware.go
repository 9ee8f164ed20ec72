package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs every incoming method call.
// Tool calls additionally carry the tool name, so a graphtable_render that
// fails is distinguishable from a failing graphtable_profile in the log.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := requestAttrs(method, req)
			attrs = append(attrs, slog.Int64("duration_ms", time.Since(start).Milliseconds()))

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			} else {
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

// requestAttrs builds the identifying log attributes for one request.
func requestAttrs(method string, req sdkmcp.Request) []slog.Attr {
	attrs := []slog.Attr{slog.String("method", method)}
	if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
		attrs = append(attrs, slog.String("tool", call.Params.Name))
	}
	return attrs
}
