package main

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clipdeck/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the clipdeck tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Projects:  a.client.Projects,
					Dashboard: a.client.Dashboard,
				},
				Version: version,
				Logger:  a.logger,
			})

			a.logger.Info("starting stdio transport", "api_url", a.cfg.API.URL)
			// Run blocks until stdin closes or the context is cancelled.
			if err := server.Run(cmd.Context(), &sdkmcp.StdioTransport{}); err != nil {
				a.logger.Error("stdio server error", "error", err)
				return err
			}
			return nil
		},
	}
}
