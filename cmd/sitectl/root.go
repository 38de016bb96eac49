package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-site/internal/commands/sitecmd"
	"github.com/goliatone/go-site/internal/logging/gologger"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/pkg/interfaces"
)

const (
	exitOK      = 0
	exitFailure = 1
)

type app struct {
	configPath string
	envFile    string

	cfg      runtimeconfig.Config
	provider interfaces.LoggerProvider

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, sitecmd.ErrAccessibilityErrors) {
			fmt.Fprintf(stderr, "sitectl: %v\n", err)
		}
		return exitFailure
	}
	return exitOK
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Serve the site API and run content tooling",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "site.yaml", "Path to the site YAML config (skipped when missing)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Dotenv file applied before environment overrides (skipped when missing)")

	root.AddCommand(
		a.serveCommand(),
		a.searchCommand(),
		a.indexCommand(),
		a.lintCommand(),
		a.mcpCommand(),
	)
	return root
}

func (a *app) loadConfig() error {
	cfg, err := runtimeconfig.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	provider, err := gologger.FromConfig(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.provider = provider
	return nil
}

// dependencies resolves the lint root against the working directory so
// relative config paths keep their meaning.
func (a *app) dependencies() sitecmd.Dependencies {
	return sitecmd.Dependencies{
		Root:    os.DirFS("."),
		Content: os.DirFS(a.cfg.Content.Dir),
		Config:  a.cfg,
		Out:     a.stdout,
	}
}

func lintRoot(dir string) (fs.FS, string) {
	if filepath.IsAbs(dir) {
		return os.DirFS(dir), "."
	}
	return os.DirFS("."), filepath.ToSlash(filepath.Clean(dir))
}
