package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

type globalOptions struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "storekraft",
		Short: "Point of sale for a single store",
		Long:  "storekraft runs a one-register store: a product catalog with live stock, one open order at a time, and a persistent order history.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", ".", "Directory holding .storekraft.yaml, inventory.json and orders.json")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every operation to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newShellCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
