package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-site/pkg/interfaces"
)

// DefaultPatterns lists the file globs discovered when none are configured.
var DefaultPatterns = []string{"*.mdx", "*.md"}

// LoaderConfig configures how content files are discovered.
type LoaderConfig struct {
	// Patterns limits discovery to matching base names (defaults to DefaultPatterns).
	Patterns []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns files in an fs.FS into documents with parsed front matter.
type Loader struct {
	fs        fs.FS
	patterns  []string
	recursive bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	patterns := make([]string, 0, len(cfg.Patterns))
	for _, pattern := range cfg.Patterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	if len(patterns) == 0 {
		patterns = append(patterns, DefaultPatterns...)
	}

	return &Loader{
		fs:        filesystem,
		patterns:  patterns,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := cleanPath(name)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return doc, nil
}

// LoadDirectory discovers matching files under dir and returns parsed
// documents sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	root := cleanPath(dir)

	var docs []*interfaces.Document

	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if current != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if !l.Matches(current) {
			return nil
		}

		doc, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})

	return docs, nil
}

// Matches reports whether the base name of name matches one of the loader patterns.
func (l *Loader) Matches(name string) bool {
	base := path.Base(name)
	for _, pattern := range l.patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func cleanPath(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "."
	}
	return path.Clean(strings.TrimPrefix(strings.ReplaceAll(trimmed, "\\", "/"), "/"))
}
