package main

import (
	"fmt"
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/tap/internal/query"
)

// service backs the MCP tool handlers.
var service *query.Service

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the vault to MCP clients over stdio",
		Long: heredoc.Doc(`
			serve runs a Model Context Protocol server on stdin/stdout. Its tools
			share the session file with the command line, so a search made by a
			client can be opened with "tap -g N" and the other way around.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			service = svc

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "tap",
				Version: version,
			}, nil)
			registerTools(server)

			slog.Info("serving vault over stdio", slog.Int("notes", len(svc.Titles())))
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("error running server: %w", err)
			}
			return nil
		},
	}
}
