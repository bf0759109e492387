package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/storekraft/internal/application"
)

// NewStoreMCPServer creates an MCP server with all store tools and resources
// registered. Every tool call goes through svc, so MCP clients share the
// same catalog and open order.
func NewStoreMCPServer(svc *application.StoreService, historyLimit int) *server.MCPServer {
	s := server.NewMCPServer(
		"storekraft",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, historyLimit)
	registerResources(s, svc, historyLimit)

	return s
}
