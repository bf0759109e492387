package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/storekraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/storekraft/internal/application"
	"github.com/abdidvp/storekraft/internal/domain"
)

func newShellCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive register menu (default)",
		Long:  "Run the numbered register menu on stdin/stdout. This is also what storekraft runs with no subcommand.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

func runShell(cmd *cobra.Command, opts *globalOptions) error {
	sess, err := openStore(opts, newLogger(cmd.ErrOrStderr(), opts))
	if err != nil {
		return err
	}
	defer func() { _ = sess.logger.Sync() }()

	sh := &shell{
		svc:          sess.svc,
		historyLimit: sess.cfg.HistoryLimit,
		in:           bufio.NewScanner(cmd.InOrStdin()),
		out:          cmd.OutOrStdout(),
	}

	fmt.Fprint(sh.out, tui.RenderBanner())
	switch {
	case sess.report.Seeded && sess.report.Existed:
		fmt.Fprint(sh.out, tui.RenderInfo("inventory.json had no usable products, recreated the initial catalog."))
	case sess.report.Seeded:
		fmt.Fprint(sh.out, tui.RenderInfo("No inventory.json found, created the initial catalog."))
	}
	fmt.Fprint(sh.out, tui.RenderSkipped(sess.report.Skipped))

	return sh.run()
}

// shell is the numbered register menu. It keeps no state of its own: the
// open order lives in the service.
type shell struct {
	svc          *application.StoreService
	historyLimit int
	in           *bufio.Scanner
	out          io.Writer
}

func (s *shell) run() error {
	for {
		fmt.Fprint(s.out, tui.RenderMenu(s.openCustomer()))
		choice, ok := s.prompt("Choose an option: ")
		if !ok {
			s.exit()
			return s.in.Err()
		}

		switch choice {
		case "1":
			fmt.Fprint(s.out, tui.RenderCatalog(s.svc.Catalog()))
		case "2":
			s.newOrder()
		case "3":
			s.addItem()
		case "4":
			s.viewCart()
		case "5":
			s.removeItem()
		case "6":
			s.cancelOrder()
		case "7":
			s.finishOrder()
		case "8":
			s.viewHistory()
		case "0":
			s.exit()
			return nil
		default:
			fmt.Fprint(s.out, tui.RenderError(fmt.Errorf("unknown option %q", choice)))
		}
	}
}

func (s *shell) newOrder() {
	name, ok := s.prompt("Customer name: ")
	if !ok {
		return
	}
	if _, err := s.svc.StartOrder(name); err != nil {
		s.report(err)
		return
	}
	fmt.Fprint(s.out, tui.RenderSuccess("Order started for "+strings.TrimSpace(name)))
}

func (s *shell) addItem() {
	if s.openCustomer() == "" {
		s.report(domain.ErrNoOpenOrder)
		return
	}
	fmt.Fprint(s.out, tui.RenderCatalog(s.svc.Catalog()))

	number, ok := s.promptInt("Product number: ")
	if !ok {
		return
	}
	quantity, ok := s.promptInt("Quantity: ")
	if !ok {
		return
	}

	view, err := s.svc.AddItem(number-1, quantity)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.report(err)
		return
	}
	fmt.Fprint(s.out, tui.RenderSuccess(fmt.Sprintf("Added %d item(s). Cart total: %s", quantity, tui.Money(view.Total))))
	if err != nil {
		s.report(err)
	}
}

func (s *shell) viewCart() {
	view, err := s.svc.Cart()
	if err != nil {
		s.report(err)
		return
	}
	fmt.Fprint(s.out, tui.RenderCart(view))
}

func (s *shell) removeItem() {
	view, err := s.svc.Cart()
	if err != nil {
		s.report(err)
		return
	}
	if view.IsEmpty() {
		fmt.Fprint(s.out, tui.RenderInfo("The cart is empty."))
		return
	}
	fmt.Fprint(s.out, tui.RenderCart(view))

	line, ok := s.promptInt("Line number: ")
	if !ok {
		return
	}
	raw, ok := s.prompt("Quantity to remove (blank removes the line): ")
	if !ok {
		return
	}

	var quantity *int
	if raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprint(s.out, tui.RenderError(fmt.Errorf("%q is not a whole number", raw)))
			return
		}
		quantity = &q
	}

	if _, err := s.svc.RemoveItem(line-1, quantity); err != nil {
		s.report(err)
		if !errors.Is(err, domain.ErrPersistence) {
			return
		}
	}
	fmt.Fprint(s.out, tui.RenderSuccess("Item removed"))
}

func (s *shell) cancelOrder() {
	customer := s.openCustomer()
	if customer == "" {
		s.report(domain.ErrNoOpenOrder)
		return
	}
	answer, ok := s.prompt(fmt.Sprintf("Cancel the order for %s? (y/n): ", customer))
	if !ok || !strings.EqualFold(answer, "y") {
		fmt.Fprint(s.out, tui.RenderInfo("Order kept."))
		return
	}

	if _, err := s.svc.CancelOrder(); err != nil {
		s.report(err)
		if !errors.Is(err, domain.ErrPersistence) {
			return
		}
	}
	fmt.Fprint(s.out, tui.RenderSuccess("Order canceled, stock restored"))
}

func (s *shell) finishOrder() {
	rec, err := s.svc.Checkout()
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.report(err)
		return
	}
	fmt.Fprint(s.out, tui.RenderRecord(rec))
	fmt.Fprint(s.out, tui.RenderSuccess("Order paid"))
	if err != nil {
		s.report(err)
	}
}

func (s *shell) viewHistory() {
	records, err := s.svc.History(s.historyLimit)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Fprint(s.out, tui.RenderHistory(records))
}

// exit cancels a still-open order so its reserved stock is not lost.
func (s *shell) exit() {
	if customer := s.openCustomer(); customer != "" {
		if _, err := s.svc.CancelOrder(); err != nil {
			s.report(err)
		} else {
			fmt.Fprint(s.out, tui.RenderInfo("Open order for "+customer+" canceled, stock restored."))
		}
	}
	fmt.Fprint(s.out, tui.RenderInfo("Goodbye."))
}

func (s *shell) openCustomer() string {
	view, err := s.svc.Cart()
	if err != nil {
		return ""
	}
	return view.CustomerName
}

func (s *shell) report(err error) {
	fmt.Fprint(s.out, tui.RenderError(err))
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, "  "+label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) promptInt(label string) (int, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprint(s.out, tui.RenderError(fmt.Errorf("%q is not a whole number", raw)))
		return 0, false
	}
	return n, true
}
