// Package mcpsrv provides an extensible MCP server for graphtable.
//
// This package exposes a high-level API for creating and running an MCP
// server with the builtin graphtable tools. Users can extend the server with
// custom tools using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer(client.New())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer server.Close()
//
//	if err := server.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Tools
//
// Register additional tools that share the builtin infrastructure:
//
//	server, err := mcpsrv.NewServer(client.New(),
//		mcpsrv.WithDeferredTool(func(srv *mcp.Server, deps *mcpsrv.Deps) {
//			// register tools that need deps here
//		}),
//	)
package mcpsrv
