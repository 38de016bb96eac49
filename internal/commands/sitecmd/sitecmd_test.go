package sitecmd_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-site/internal/commands"
	"github.com/goliatone/go-site/internal/commands/sitecmd"
	"github.com/goliatone/go-site/internal/lint"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/pkg/testsupport"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func lintDeps(out *bytes.Buffer) sitecmd.Dependencies {
	return sitecmd.Dependencies{
		Root:   os.DirFS(filepath.Join("..", "..", "lint", "testdata")),
		Config: runtimeconfig.DefaultConfig(),
		Out:    out,
		Now:    fixedNow,
	}
}

func TestAuditAccessibilityFailsOnErrors(t *testing.T) {
	var out bytes.Buffer
	reportPath := filepath.Join(t.TempDir(), "report.json")
	handler := sitecmd.NewAuditAccessibilityHandler(lintDeps(&out), nil)

	err := handler.Execute(context.Background(), sitecmd.AuditAccessibilityCommand{Dir: "posts", ReportPath: reportPath})
	if !errors.Is(err, sitecmd.ErrAccessibilityErrors) {
		t.Fatalf("expected accessibility error, got %v", err)
	}

	var report lint.AccessibilityReport
	if err := testsupport.LoadJSON(reportPath, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.FilesScanned != 4 || report.Errors == 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if !strings.Contains(out.String(), "Report written to "+reportPath) {
		t.Fatalf("expected summary output, got %q", out.String())
	}
}

func TestAuditAccessibilityPassesCleanTree(t *testing.T) {
	var out bytes.Buffer
	deps := lintDeps(&out)
	deps.Root = fstest.MapFS{
		"posts/ok.mdx": {Data: []byte("---\ntitle: Ok\n---\n\n# Ok\n\n![Chart of savings](/c.png)\n")},
	}
	handler := sitecmd.NewAuditAccessibilityHandler(deps, nil)

	err := handler.Execute(context.Background(), sitecmd.AuditAccessibilityCommand{
		Dir:        "posts",
		ReportPath: filepath.Join(t.TempDir(), "report.json"),
	})
	if err != nil {
		t.Fatalf("expected clean audit, got %v", err)
	}
}

func TestAuditAccessibilityRejectsMissingReportPath(t *testing.T) {
	handler := sitecmd.NewAuditAccessibilityHandler(lintDeps(&bytes.Buffer{}), nil)
	err := handler.Execute(context.Background(), sitecmd.AuditAccessibilityCommand{Dir: "posts"})
	if !commands.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckLinksIsInformational(t *testing.T) {
	var out bytes.Buffer
	handler := sitecmd.NewCheckLinksHandler(lintDeps(&out), nil)

	err := handler.Execute(context.Background(), sitecmd.CheckLinksCommand{Dir: "posts", MinInsightLinks: 2, MinToolLinks: 1})
	if err != nil {
		t.Fatalf("links pass should not fail: %v", err)
	}
	if !strings.Contains(out.String(), "file(s) meet the internal link requirements") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCheckActionBoxIsInformational(t *testing.T) {
	var out bytes.Buffer
	handler := sitecmd.NewCheckActionBoxHandler(lintDeps(&out), nil)

	if err := handler.Execute(context.Background(), sitecmd.CheckActionBoxCommand{Dir: "posts"}); err != nil {
		t.Fatalf("action box pass should not fail: %v", err)
	}
	if !strings.Contains(out.String(), "file(s) have a call to action") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestBuildIndexWritesJSON(t *testing.T) {
	var out bytes.Buffer
	deps := sitecmd.Dependencies{
		Content: os.DirFS(filepath.Join("..", "..", "content", "testdata", "site")),
		Config:  runtimeconfig.DefaultConfig(),
		Out:     &out,
	}
	target := filepath.Join(t.TempDir(), "nested", "index.json")
	handler := sitecmd.NewBuildIndexHandler(deps, nil)

	if err := handler.Execute(context.Background(), sitecmd.BuildIndexCommand{Output: target}); err != nil {
		t.Fatalf("build index: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Indexed ") {
		t.Fatalf("expected summary, got %q", out.String())
	}

	var results []map[string]any
	if err := testsupport.LoadJSON(target, &results); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected indexed results")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterSiteCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := sitecmd.RegisterSiteCommands(reg, lintDeps(&bytes.Buffer{}), nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.handlers) != 4 || set.BuildIndex == nil {
		t.Fatalf("expected four handlers registered, got %d", len(reg.handlers))
	}

	access, links, box := sitecmd.Defaults(lintDeps(&bytes.Buffer{}))
	if access.Dir != "content/insights" || links.MinInsightLinks != 2 || box.Dir != access.Dir {
		t.Fatalf("unexpected defaults: %+v %+v %+v", access, links, box)
	}
}
