package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-site/internal/commands/sitecmd"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/search"
)

func (a *app) searchCommand() *cobra.Command {
	var (
		types  []string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Query the content index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := search.OptionsFromConfig(a.cfg.Search)
			kinds := make([]search.Type, 0, len(types))
			for _, raw := range types {
				kind, ok := search.ParseType(raw)
				if !ok {
					return fmt.Errorf("unknown content type %q", raw)
				}
				kinds = append(kinds, kind)
			}
			if len(kinds) > 0 {
				opts = append(opts, search.WithTypes(kinds...))
			}
			if limit > 0 {
				opts = append(opts, search.WithLimit(limit))
			}

			index, err := sitecmd.BuildIndex(cmd.Context(), a.dependencies().Content, a.cfg, logging.SearchLogger(a.provider))
			if err != nil {
				return err
			}
			resp := search.NewEngine(index).Query(strings.Join(args, " "), opts...)
			if asJSON {
				encoder := json.NewEncoder(a.stdout)
				encoder.SetIndent("", "  ")
				encoder.SetEscapeHTML(false)
				return encoder.Encode(resp)
			}
			printResponse(a, resp)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "Restrict results to content types (insight, event, job, tool, case-study)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response as JSON")
	return cmd
}

func printResponse(a *app, resp search.Response) {
	if len(resp.Results) == 0 {
		fmt.Fprintf(a.stdout, "No results for %q\n", resp.Query)
		if len(resp.Suggestions) > 0 {
			fmt.Fprintf(a.stdout, "Did you mean: %s\n", strings.Join(resp.Suggestions, ", "))
		}
		return
	}
	for _, result := range resp.Results {
		fmt.Fprintf(a.stdout, "[%s] %s %s\n", result.Type, result.Title, result.URL)
	}
	if resp.Total > len(resp.Results) {
		fmt.Fprintf(a.stdout, "%d of %d result(s)\n", len(resp.Results), resp.Total)
	}
}
