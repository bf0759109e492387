package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/abdidvp/storekraft/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 4).
			Align(lipgloss.Center).
			Width(52)

	statusColors = map[domain.OrderStatus]lipgloss.Color{
		domain.StatusOpen:     info,
		domain.StatusPaid:     success,
		domain.StatusCanceled: danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	numberStyle   = lipgloss.NewStyle().Foreground(accent)
	priceStyle    = lipgloss.NewStyle().Foreground(fg).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 56))
)

// Money formats an amount with two decimals and a dollar sign.
func Money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// RenderBanner is the shell's greeting box.
func RenderBanner() string {
	title := headerStyle.Render("storekraft")
	subtitle := dimStyle.Render("point of sale")
	return boxStyle.Render(title+"\n"+subtitle) + "\n"
}

// RenderMenu prints the numbered shell options. customer is the open order's
// customer, or empty when no order is open.
func RenderMenu(customer string) string {
	var b strings.Builder
	b.WriteString("\n")
	if customer != "" {
		b.WriteString("  " + dimStyle.Render("Open order: ") + titleStyle.Render(customer) + "\n")
	} else {
		b.WriteString("  " + dimStyle.Render("No open order") + "\n")
	}
	b.WriteString("  " + separatorLine + "\n")
	options := []struct{ key, label string }{
		{"1", "View catalog"},
		{"2", "New order"},
		{"3", "Add item"},
		{"4", "View cart"},
		{"5", "Remove item"},
		{"6", "Cancel order"},
		{"7", "Finish order"},
		{"8", "Order history"},
		{"0", "Exit"},
	}
	for _, o := range options {
		b.WriteString(fmt.Sprintf("  %s  %s\n", numberStyle.Render(o.key), o.label))
	}
	return b.String()
}

// RenderCatalog lists products with 1-based numbers.
func RenderCatalog(products []*domain.Product) string {
	if len(products) == 0 {
		return "  " + dimStyle.Render("The catalog is empty.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Catalog") + "\n")
	b.WriteString("  " + separatorLine + "\n")

	for i, p := range products {
		stock := fmt.Sprintf("%d in stock", p.Stock())
		stockStyled := dimStyle.Render(stock)
		if p.Stock() == 0 {
			stockStyled = failStyle.Render("out of stock")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
			numberStyle.Render(fmt.Sprintf("%2d.", i+1)),
			padRight(p.Name, 24),
			priceStyle.Render(padLeft(Money(p.Price), 10)),
			stockStyled,
		))
		if d := p.Variant.Describe(); d != "" {
			b.WriteString("      " + faintStyle.Render(d) + "\n")
		}
	}
	return b.String()
}

// RenderCart shows the lines of an order with 1-based numbers and totals.
func RenderCart(view domain.CartView) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n",
		titleStyle.Render("Cart of "+view.CustomerName),
		statusTag(view.Status),
	))
	b.WriteString("  " + separatorLine + "\n")

	if view.IsEmpty() {
		b.WriteString("  " + dimStyle.Render("The cart is empty.") + "\n")
		return b.String()
	}

	writeLines(&b, view.Items)
	b.WriteString("  " + separatorLine + "\n")
	if view.Shipping > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", padRight("Shipping (informational)", 42), dimStyle.Render(Money(view.Shipping))))
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", padRight("Total", 42), priceStyle.Render(Money(view.Total))))
	return b.String()
}

// RenderRecord formats a finished order as a receipt.
func RenderRecord(rec domain.OrderRecord) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", titleStyle.Render("Order for "+rec.CustomerName), statusTag(rec.Status)))
	b.WriteString("  " + dimStyle.Render(formatTime(rec.CreatedAt)+" → "+formatTime(rec.FinishedAt)) + "\n")
	b.WriteString("  " + separatorLine + "\n")
	if len(rec.Items) > 0 {
		writeLines(&b, rec.Items)
		b.WriteString("  " + separatorLine + "\n")
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", padRight("Total", 42), priceStyle.Render(Money(rec.Total))))
	return b.String()
}

// RenderHistory formats order history, newest first.
func RenderHistory(records []domain.OrderRecord) string {
	if len(records) == 0 {
		return "  " + dimStyle.Render("No orders recorded yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Order History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, r := range records {
		b.WriteString(fmt.Sprintf("  %s  %s  %s  %s  %s\n",
			dimStyle.Render(formatTime(r.FinishedAt)),
			statusTag(r.Status),
			padRight(r.CustomerName, 16),
			faintStyle.Render(fmt.Sprintf("%d items", itemCount(r.Items))),
			priceStyle.Render(Money(r.Total)),
		))
	}
	return b.String()
}

// RenderSkipped warns about catalog records that could not be loaded.
func RenderSkipped(skipped []domain.SkippedRecord) string {
	if len(skipped) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range skipped {
		b.WriteString(fmt.Sprintf("  %s record %d skipped: %s\n",
			warnStyle.Render("⚠"), s.Index, skipStyle.Render(s.Reason)))
	}
	return b.String()
}

// RenderSuccess and RenderError format one-line shell feedback.
func RenderSuccess(msg string) string {
	return "  " + passStyle.Render("✓") + " " + msg + "\n"
}

func RenderError(err error) string {
	return "  " + failStyle.Render("✗") + " " + err.Error() + "\n"
}

func RenderInfo(msg string) string {
	return "  " + dimStyle.Render(msg) + "\n"
}

func writeLines(b *strings.Builder, items []domain.LineSnapshot) {
	for i, it := range items {
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			numberStyle.Render(fmt.Sprintf("%2d.", i+1)),
			padRight(it.Name, 20),
			dimStyle.Render(padLeft(fmt.Sprintf("%d x %s", it.Quantity, Money(it.UnitPrice)), 18)),
			padLeft(Money(it.Subtotal), 12),
		))
	}
}

func statusTag(status domain.OrderStatus) string {
	c, ok := statusColors[status]
	if !ok {
		c = fg
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(status))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "----------"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func itemCount(items []domain.LineSnapshot) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
