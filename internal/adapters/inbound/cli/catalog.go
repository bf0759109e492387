package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/storekraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/storekraft/internal/domain"
)

func newCatalogCmd(opts *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog with live stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openStore(opts, newLogger(cmd.ErrOrStderr(), opts))
			if err != nil {
				return err
			}
			products := sess.svc.Catalog()

			if jsonOutput {
				records := make([]domain.ProductRecord, len(products))
				for i, p := range products {
					records[i] = domain.RecordFromProduct(p)
				}
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSkipped(sess.report.Skipped))
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCatalog(products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openStore(opts, newLogger(cmd.ErrOrStderr(), opts))
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = sess.cfg.HistoryLimit
			}
			records, err := sess.svc.History(limit)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				if records == nil {
					records = []domain.OrderRecord{}
				}
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Number of orders to show (0 shows all)")
	return cmd
}
