package cli

import (
	mcpadapter "github.com/abdidvp/storekraft/internal/adapters/inbound/mcp"
	"github.com/abdidvp/storekraft/internal/adapters/outbound/logging"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the storekraft MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start storekraft MCP server (stdio)",
		Long:  "Start the storekraft MCP server using stdio transport. Assistants can browse the catalog, build an order and check it out against the same data files as the shell.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to stderr as JSON.
			logger := logging.NewJSON(cmd.ErrOrStderr(), opts.verbose)
			defer func() { _ = logger.Sync() }()

			sess, err := openStore(opts, logger)
			if err != nil {
				return err
			}
			s := mcpadapter.NewStoreMCPServer(sess.svc, sess.cfg.HistoryLimit)
			return server.ServeStdio(s)
		},
	}
}
