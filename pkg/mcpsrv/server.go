package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacell/graphtable/internal/cache"
	"github.com/datacell/graphtable/internal/config"
	"github.com/datacell/graphtable/internal/logging"
	"github.com/datacell/graphtable/internal/mcp"
	"github.com/datacell/graphtable/internal/mcp/tools"
	"github.com/datacell/graphtable/internal/profile"
	"github.com/datacell/graphtable/internal/resultfetch"
	"github.com/datacell/graphtable/internal/rowextract"
	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/table"
)

// Server is the graphtable MCP server. It wraps the internal implementation
// and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin graphtable tools.
//
// The client parameter is required and provides access to the data
// platform's graph-query API. Use functional options to configure logging
// and register custom tools.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("client is required")
	}

	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	resultCache, err := cache.NewResultCache(cfg.config.ResultCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	deriver := table.NewDeriver(slog.Default())
	extractor := rowextract.New(slog.Default())
	fetcher := resultfetch.New(c, resultCache, extractor)
	profiler := profile.NewEngine()

	toolDeps := &tools.Deps{
		Client:    c,
		Config:    cfg.config,
		Cache:     resultCache,
		Deriver:   deriver,
		Extractor: extractor,
		Fetcher:   fetcher,
		Profiler:  profiler,
	}

	deps := &Deps{
		Client:    c,
		Config:    cfg.config,
		Cache:     resultCache,
		Deriver:   deriver,
		Extractor: extractor,
		Fetcher:   fetcher,
		Profiler:  profiler,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferred {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport. The server runs until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
