// Wiki.js MCP Server - A Model Context Protocol server for Wiki.js wikis
// Exposes list, get, create, and update page operations over the Wiki.js
// GraphQL API as MCP tools.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/wikijs-mcp-server/tools"
	"github.com/olgasafonova/wikijs-mcp-server/tracing"
	"github.com/olgasafonova/wikijs-mcp-server/wiki"
)

const (
	ServerName    = "wikijs-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := wiki.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize tracing (no-op unless enabled via OTEL_* environment)
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer func() { _ = shutdownTracing(ctx) }()
	}

	// Create Wiki.js client
	client := wiki.NewClient(config, logger)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Wiki.js MCP Server provides tools for reading and writing Wiki.js content.

Available tools:
- wiki_list_pages: List pages (orderBy, limit)
- wiki_get_page: Get a page by id or path
- wiki_create_page: Create a new page
- wiki_update_page: Update an existing page by id or path

Configure via environment variables:
- WIKI_API_URL: Wiki base URL (e.g., https://wiki.example.com)
- WIKI_API_TOKEN: API bearer token
- WIKI_PATH_FALLBACKS: Optional path-variant fallbacks for lookups`,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(client, logger)
	registry.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting Wiki.js MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"endpoint", config.Endpoint(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
