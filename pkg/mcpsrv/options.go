package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacell/graphtable/internal/config"
)

// serverConfig holds the assembled configuration for NewServer.
type serverConfig struct {
	config              *config.Config
	logLevel            string
	logFile             string
	disableBuiltinTools bool
	registrations       []func(*sdkmcp.Server)
	deferred            []func(*sdkmcp.Server, *Deps)
}

// Option is a functional option for configuring the server.
type Option func(*serverConfig)

// WithLogLevel overrides the log level from the environment.
func WithLogLevel(level string) Option {
	return func(c *serverConfig) {
		c.logLevel = level
	}
}

// WithLogFile overrides the log file path from the environment.
func WithLogFile(path string) Option {
	return func(c *serverConfig) {
		c.logFile = path
	}
}

// WithoutBuiltinTools disables the builtin graphtable tools, leaving only
// custom registrations.
func WithoutBuiltinTools() Option {
	return func(c *serverConfig) {
		c.disableBuiltinTools = true
	}
}

// WithRegistration adds a callback that registers tools, prompts, or
// resources directly on the underlying MCP server.
func WithRegistration(fn func(*sdkmcp.Server)) Option {
	return func(c *serverConfig) {
		c.registrations = append(c.registrations, fn)
	}
}

// WithDeferredTool adds a callback that registers tools needing access to
// the server's dependencies.
func WithDeferredTool(fn func(*sdkmcp.Server, *Deps)) Option {
	return func(c *serverConfig) {
		c.deferred = append(c.deferred, fn)
	}
}
