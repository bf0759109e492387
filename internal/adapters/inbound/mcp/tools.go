package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/storekraft/internal/application"
	"github.com/abdidvp/storekraft/internal/domain"
)

// registerTools registers all store MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.StoreService, historyLimit int) {
	// 1. store_list_catalog
	s.AddTool(
		mcplib.NewTool("store_list_catalog",
			mcplib.WithDescription("Lists the catalog with live stock. Product numbers are 1-based."),
		),
		handleListCatalog(svc),
	)

	// 2. store_start_order
	s.AddTool(
		mcplib.NewTool("store_start_order",
			mcplib.WithDescription("Opens a new order for a customer. Fails while another order is open."),
			mcplib.WithString("customer",
				mcplib.Required(),
				mcplib.Description("Customer name"),
			),
		),
		handleStartOrder(svc),
	)

	// 3. store_add_item
	s.AddTool(
		mcplib.NewTool("store_add_item",
			mcplib.WithDescription("Adds units of a catalog product to the open order, reserving stock"),
			mcplib.WithNumber("product", mcplib.Required(), mcplib.Description("1-based product number from store_list_catalog")),
			mcplib.WithNumber("quantity", mcplib.Required(), mcplib.Description("Units to add (positive)")),
		),
		handleAddItem(svc),
	)

	// 4. store_remove_item
	s.AddTool(
		mcplib.NewTool("store_remove_item",
			mcplib.WithDescription("Removes units from a cart line and releases their stock. Omitting quantity removes the whole line."),
			mcplib.WithNumber("line", mcplib.Required(), mcplib.Description("1-based cart line number")),
			mcplib.WithNumber("quantity", mcplib.Description("Units to remove")),
		),
		handleRemoveItem(svc),
	)

	// 5. store_view_cart
	s.AddTool(
		mcplib.NewTool("store_view_cart",
			mcplib.WithDescription("Returns the open order's lines, total and shipping estimate"),
		),
		handleViewCart(svc),
	)

	// 6. store_cancel_order
	s.AddTool(
		mcplib.NewTool("store_cancel_order",
			mcplib.WithDescription("Cancels the open order and restores all its reserved stock"),
		),
		handleCancelOrder(svc),
	)

	// 7. store_checkout
	s.AddTool(
		mcplib.NewTool("store_checkout",
			mcplib.WithDescription("Marks the open order as paid and appends it to the order history"),
		),
		handleCheckout(svc),
	)

	// 8. store_order_history
	s.AddTool(
		mcplib.NewTool("store_order_history",
			mcplib.WithDescription("Returns finished orders, newest first"),
			mcplib.WithNumber("limit", mcplib.Description(fmt.Sprintf("Maximum number of orders (default %d, 0 for all)", historyLimit))),
		),
		handleOrderHistory(svc, historyLimit),
	)
}

// outcome is the payload of a mutating tool. Warning carries a persistence
// failure that happened after the change was applied in memory.
type outcome struct {
	Result  any    `json:"result"`
	Warning string `json:"warning,omitempty"`
}

func handleListCatalog(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(catalogEntries(svc.Catalog()))
	}
}

func handleStartOrder(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		customer, err := request.RequireString("customer")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		view, err := svc.StartOrder(customer)
		return mutationResult(view, err)
	}
}

func handleAddItem(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		product, err := request.RequireInt("product")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		quantity, err := request.RequireInt("quantity")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		view, err := svc.AddItem(product-1, quantity)
		return mutationResult(view, err)
	}
}

func handleRemoveItem(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		line, err := request.RequireInt("line")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var quantity *int
		if _, ok := request.GetArguments()["quantity"]; ok {
			q, err := request.RequireInt("quantity")
			if err != nil {
				return errorResult(err.Error()), nil
			}
			quantity = &q
		}

		view, err := svc.RemoveItem(line-1, quantity)
		return mutationResult(view, err)
	}
}

func handleViewCart(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		view, err := svc.Cart()
		if err != nil {
			return domainErrorResult(err), nil
		}
		return jsonResult(view)
	}
}

func handleCancelOrder(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rec, err := svc.CancelOrder()
		return mutationResult(rec, err)
	}
}

func handleCheckout(svc *application.StoreService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rec, err := svc.Checkout()
		return mutationResult(rec, err)
	}
}

func handleOrderHistory(svc *application.StoreService, defaultLimit int) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		limit := request.GetInt("limit", defaultLimit)
		records, err := svc.History(limit)
		if err != nil {
			return domainErrorResult(err), nil
		}
		if records == nil {
			records = []domain.OrderRecord{}
		}
		return jsonResult(records)
	}
}

// catalogEntry numbers a product the way clients address it.
type catalogEntry struct {
	Number int `json:"number"`
	domain.ProductRecord
}

func catalogEntries(products []*domain.Product) []catalogEntry {
	entries := make([]catalogEntry, len(products))
	for i, p := range products {
		entries[i] = catalogEntry{Number: i + 1, ProductRecord: domain.RecordFromProduct(p)}
	}
	return entries
}

// mutationResult reports a domain failure as a tool error. A persistence
// failure still returns the result, since the change was applied.
func mutationResult(v any, err error) (*mcplib.CallToolResult, error) {
	switch {
	case err == nil:
		return jsonResult(outcome{Result: v})
	case errors.Is(err, domain.ErrPersistence):
		return jsonResult(outcome{Result: v, Warning: err.Error()})
	default:
		return domainErrorResult(err), nil
	}
}

func domainErrorResult(err error) *mcplib.CallToolResult {
	if code := domain.CodeOf(err); code != 0 {
		return errorResult(fmt.Sprintf("%s: %v", code, err))
	}
	return errorResult(err.Error())
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
