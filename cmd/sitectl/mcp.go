package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/mcpsearch"
	"github.com/goliatone/go-site/internal/routes"
	"github.com/goliatone/go-site/internal/search"
)

func (a *app) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve search_content and get_insight as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol, so module logs are dropped.
			a.provider = nil

			ctx := cmd.Context()
			catalog, err := content.Load(ctx, a.dependencies().Content, content.OptionsFromConfig(a.cfg.Content, nil))
			if err != nil {
				return err
			}
			resolver := routes.FromConfig(a.cfg)
			index, err := search.BuildIndex(catalog, resolver)
			if err != nil {
				return err
			}
			engine := search.NewEngine(index, search.OptionsFromConfig(a.cfg.Search)...)
			server := mcpsearch.NewServer(engine, catalog,
				mcpsearch.WithURLBuilder(resolver),
				mcpsearch.WithLogger(logging.MCPLogger(a.provider)),
			)
			return server.Listen(ctx, a.stdin, a.stdout)
		},
	}
}
