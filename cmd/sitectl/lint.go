package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-site/internal/commands/sitecmd"
)

func (a *app) lintCommand() *cobra.Command {
	lint := &cobra.Command{
		Use:   "lint",
		Short: "Run content lint passes over the insights directory",
	}
	lint.AddCommand(
		&cobra.Command{
			Use:   "accessibility",
			Short: "Audit alt text, link text and heading structure; exits 1 on errors",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps, dir := a.lintDependencies()
				msg, _, _ := sitecmd.Defaults(deps)
				msg.Dir = dir
				return dispatch(cmd.Context(), a, deps, msg)
			},
		},
		&cobra.Command{
			Use:   "links",
			Short: "Count internal insight and tool links per file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps, dir := a.lintDependencies()
				_, msg, _ := sitecmd.Defaults(deps)
				msg.Dir = dir
				return dispatch(cmd.Context(), a, deps, msg)
			},
		},
		&cobra.Command{
			Use:   "action-box",
			Short: "Report which files close with a call to action",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps, dir := a.lintDependencies()
				_, _, msg := sitecmd.Defaults(deps)
				msg.Dir = dir
				return dispatch(cmd.Context(), a, deps, msg)
			},
		},
	)
	return lint
}

func (a *app) lintDependencies() (sitecmd.Dependencies, string) {
	deps := a.dependencies()
	root, dir := lintRoot(a.cfg.Lint.Dir)
	deps.Root = root
	return deps, dir
}
