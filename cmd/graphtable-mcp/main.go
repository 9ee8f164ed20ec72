package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/datacell/graphtable/internal/config"
	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create the data API client.
	// Base URL and HTTP client timeout come from the environment
	// (GRAPHTABLE_BASE_URL defaults to http://localhost:8080).
	cfg := config.Load()
	dataClient := client.New(
		client.WithBaseURL(cfg.DataAPIBaseURL),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
	)

	// Create the MCP server with all builtin tools. Logging and limits are
	// configured via environment variables (see internal/config).
	server, err := mcpsrv.NewServer(dataClient)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	// Run the server with stdio transport
	slog.Info("starting graphtable MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
