package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-site/internal/commands/sitecmd"
)

func (a *app) indexCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Load the content catalog and build the search index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd.Context(), a, a.dependencies(), sitecmd.BuildIndexCommand{Output: output})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `Write the index as JSON to this path ("-" for stdout)`)
	return cmd
}
