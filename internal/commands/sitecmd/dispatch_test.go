package sitecmd_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-site/internal/commands/sitecmd"
	"github.com/goliatone/go-site/internal/runtimeconfig"
)

var errVolumeUnavailable = errors.New("content volume not mounted")

// flakyFS fails the first n opens, then serves the wrapped filesystem.
type flakyFS struct {
	mu    sync.Mutex
	fsys  fs.FS
	fails int
	opens int
}

func (f *flakyFS) Open(name string) (fs.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.fails > 0 {
		f.fails--
		return nil, errVolumeUnavailable
	}
	return f.fsys.Open(name)
}

func contentDeps(fsys fs.FS, out *bytes.Buffer) sitecmd.Dependencies {
	return sitecmd.Dependencies{
		Content: fsys,
		Config:  runtimeconfig.DefaultConfig(),
		Out:     out,
	}
}

func siteContent() fs.FS {
	return os.DirFS(filepath.Join("..", "..", "content", "testdata", "site"))
}

func TestDispatchBuildIndexRetriesTransientContentErrors(t *testing.T) {
	var out bytes.Buffer
	fsys := &flakyFS{fsys: siteContent(), fails: 1}
	handler := sitecmd.NewBuildIndexHandler(contentDeps(fsys, &out), nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), sitecmd.BuildIndexCommand{Output: "-"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if !strings.Contains(out.String(), "Indexed ") {
		t.Fatalf("expected index summary after retry, got %q", out.String())
	}
}

func TestDispatchBuildIndexGivesUpAfterRetries(t *testing.T) {
	fsys := &flakyFS{fsys: siteContent(), fails: 10}
	handler := sitecmd.NewBuildIndexHandler(contentDeps(fsys, &bytes.Buffer{}), nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), sitecmd.BuildIndexCommand{Output: "-"})
	if err == nil {
		t.Fatal("expected dispatch to fail once retries are exhausted")
	}
	if !errors.Is(err, errVolumeUnavailable) {
		t.Fatalf("expected underlying cause in error, got %v", err)
	}
	if fsys.opens != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", fsys.opens)
	}
}

func TestDispatchRejectsInvalidLintMessage(t *testing.T) {
	var out bytes.Buffer
	handler := sitecmd.NewCheckLinksHandler(lintDeps(&out), nil)

	sub := dispatcher.SubscribeCommand(handler)
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), sitecmd.CheckLinksCommand{Dir: "posts", MinInsightLinks: -1})
	if err == nil {
		t.Fatal("expected dispatch to reject a negative link threshold")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no lint output for a rejected message, got %q", out.String())
	}
}
