package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/storekraft/internal/application"
)

const (
	catalogURI = "store://catalog"
	historyURI = "store://history"
)

// registerResources registers all store MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.StoreService, historyLimit int) {
	// 1. store://catalog - products with live stock
	s.AddResource(
		mcplib.NewResource(
			catalogURI,
			"Catalog",
			mcplib.WithResourceDescription("Products with live stock, numbered from 1"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonResource(catalogURI, catalogEntries(svc.Catalog()))
		},
	)

	// 2. store://history - recent finished orders
	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Order History",
			mcplib.WithResourceDescription("Most recent finished orders, newest first"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			records, err := svc.History(historyLimit)
			if err != nil {
				return nil, fmt.Errorf("loading history: %w", err)
			}
			return jsonResource(historyURI, records)
		},
	)
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
