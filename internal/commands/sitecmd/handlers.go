package sitecmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-site/internal/commands"
	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/lint"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/routes"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/internal/search"
	"github.com/goliatone/go-site/pkg/interfaces"
)

const (
	accessibilityOperation = "lint.accessibility"
	linksOperation         = "lint.links"
	actionBoxOperation     = "lint.action_box"
	buildIndexOperation    = "search.build_index"
)

// ErrAccessibilityErrors is returned when the audit finds error-severity issues.
var ErrAccessibilityErrors = errors.New("sitecmd: accessibility audit found errors")

var (
	_ command.Commander[AuditAccessibilityCommand] = (*AuditAccessibilityHandler)(nil)
	_ command.Commander[CheckLinksCommand]         = (*CheckLinksHandler)(nil)
	_ command.Commander[CheckActionBoxCommand]     = (*CheckActionBoxHandler)(nil)
	_ command.Commander[BuildIndexCommand]         = (*BuildIndexHandler)(nil)
)

// Dependencies are the resources the site command handlers read from.
type Dependencies struct {
	// Root resolves lint directories, normally the working directory.
	Root fs.FS
	// Content is the content root the catalog loads from.
	Content fs.FS
	Config  runtimeconfig.Config
	Out     io.Writer
	Now     func() time.Time
}

func (d Dependencies) out() io.Writer {
	if d.Out == nil {
		return io.Discard
	}
	return d.Out
}

func (d Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now()
}

type AuditAccessibilityHandler struct {
	inner *commands.Handler[AuditAccessibilityCommand]
}

func NewAuditAccessibilityHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[AuditAccessibilityCommand]) *AuditAccessibilityHandler {
	exec := func(ctx context.Context, msg AuditAccessibilityCommand) error {
		report, err := lint.AuditAccessibility(ctx, deps.Root, msg.Dir, deps.Config.Content.Patterns, deps.now())
		if err != nil {
			return err
		}
		if err := lint.WriteReport(msg.ReportPath, report); err != nil {
			return err
		}
		lint.PrintAccessibility(deps.out(), report, msg.ReportPath)
		if report.HasErrors() {
			return fmt.Errorf("%w: %d error(s)", ErrAccessibilityErrors, report.Errors)
		}
		return nil
	}
	return &AuditAccessibilityHandler{inner: newHandler(exec, logger, accessibilityOperation, opts)}
}

func (h *AuditAccessibilityHandler) Execute(ctx context.Context, msg AuditAccessibilityCommand) error {
	return h.inner.Execute(ctx, msg)
}

type CheckLinksHandler struct {
	inner *commands.Handler[CheckLinksCommand]
}

func NewCheckLinksHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[CheckLinksCommand]) *CheckLinksHandler {
	exec := func(ctx context.Context, msg CheckLinksCommand) error {
		req := lint.Requirements{MinInsightLinks: msg.MinInsightLinks, MinToolLinks: msg.MinToolLinks}
		results, err := lint.AuditInternalLinks(ctx, deps.Root, msg.Dir, deps.Config.Content.Patterns, req)
		if err != nil {
			return err
		}
		lint.PrintLinks(deps.out(), results)
		return nil
	}
	return &CheckLinksHandler{inner: newHandler(exec, logger, linksOperation, opts)}
}

func (h *CheckLinksHandler) Execute(ctx context.Context, msg CheckLinksCommand) error {
	return h.inner.Execute(ctx, msg)
}

type CheckActionBoxHandler struct {
	inner *commands.Handler[CheckActionBoxCommand]
}

func NewCheckActionBoxHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[CheckActionBoxCommand]) *CheckActionBoxHandler {
	exec := func(ctx context.Context, msg CheckActionBoxCommand) error {
		results, err := lint.AuditActionBoxes(ctx, deps.Root, msg.Dir, deps.Config.Content.Patterns)
		if err != nil {
			return err
		}
		lint.PrintActionBoxes(deps.out(), results)
		return nil
	}
	return &CheckActionBoxHandler{inner: newHandler(exec, logger, actionBoxOperation, opts)}
}

func (h *CheckActionBoxHandler) Execute(ctx context.Context, msg CheckActionBoxCommand) error {
	return h.inner.Execute(ctx, msg)
}

type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

func NewBuildIndexHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		index, err := BuildIndex(ctx, deps.Content, deps.Config, logger)
		if err != nil {
			return err
		}
		out := deps.out()
		printIndexSummary(out, index)

		switch target := strings.TrimSpace(msg.Output); target {
		case "":
			return nil
		case "-":
			return writeIndexJSON(out, index)
		default:
			return writeIndexFile(target, index)
		}
	}
	return &BuildIndexHandler{inner: newHandler(exec, logger, buildIndexOperation, opts)}
}

func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildIndex loads the catalog from contentFS and flattens it into a search
// index with URLs resolved through the configured routes.
func BuildIndex(ctx context.Context, contentFS fs.FS, cfg runtimeconfig.Config, logger interfaces.Logger) (*search.Index, error) {
	catalog, err := content.Load(ctx, contentFS, content.OptionsFromConfig(cfg.Content, logger))
	if err != nil {
		return nil, err
	}
	return search.BuildIndex(catalog, routes.FromConfig(cfg))
}

func printIndexSummary(w io.Writer, index *search.Index) {
	counts := index.CountByType()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", kind, counts[search.Type(kind)]))
	}
	fmt.Fprintf(w, "Indexed %d result(s)", index.Len())
	if len(parts) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(w)
}

func writeIndexJSON(w io.Writer, index *search.Index) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(index.Results())
}

func writeIndexFile(path string, index *search.Index) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sitecmd: create index dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sitecmd: create index file: %w", err)
	}
	if err := writeIndexJSON(file, index); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func newHandler[T command.Message](exec command.CommandFunc[T], logger interfaces.Logger, operation string, opts []commands.HandlerOption[T]) *commands.Handler[T] {
	base := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}
