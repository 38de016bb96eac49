// Package lint runs the structural content checks over MDX files:
// accessibility, internal linking and closing calls to action. Each pass is
// independent and keeps no state between runs.
package lint

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-site/internal/markdown"
)

// Severity is either SeverityError or SeverityWarning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding. Line is 1-based and refers to the file on disk,
// front matter included.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// Source is one content file read from disk.
type Source struct {
	Path string
	Data []byte
}

// ReadSources returns every file under dir matching patterns (DefaultPatterns
// when empty), sorted by path.
func ReadSources(ctx context.Context, fsys fs.FS, dir string, patterns []string) ([]Source, error) {
	matcher := markdown.NewLoader(fsys, markdown.LoaderConfig{Patterns: patterns})
	root := strings.TrimSpace(dir)
	if root == "" {
		root = "."
	}

	var sources []Source
	err := fs.WalkDir(fsys, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !matcher.Matches(current) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, current)
		if err != nil {
			return err
		}
		sources = append(sources, Source{Path: current, Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lint: read %s: %w", root, err)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})
	return sources, nil
}

var fencePattern = regexp.MustCompile("^\\s*(```|~~~)")

// maskedLines splits src into lines, blanking front matter, fenced code and
// inline code spans so checks only see prose. Line numbers and byte offsets
// stay physical.
func maskedLines(src []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")

	start := 0
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				for j := 0; j <= i; j++ {
					lines[j] = ""
				}
				start = i + 1
				break
			}
		}
	}

	inFence := false
	for i := start; i < len(lines); i++ {
		if fencePattern.MatchString(lines[i]) {
			inFence = !inFence
			lines[i] = ""
			continue
		}
		if inFence {
			lines[i] = ""
			continue
		}
		lines[i] = maskInlineCode(lines[i])
	}
	return lines
}

// maskInlineCode replaces each backtick code span on line, delimiters
// included, with spaces of the same byte length. A run of backticks opens a
// span only when a run of the same length closes it later on the line.
func maskInlineCode(line string) string {
	if !strings.Contains(line, "`") {
		return line
	}
	out := []byte(line)
	for i := 0; i < len(out); {
		if out[i] != '`' {
			i++
			continue
		}
		open := backtickRun(out, i)
		end := -1
		for j := i + open; j < len(out); {
			if out[j] != '`' {
				j++
				continue
			}
			run := backtickRun(out, j)
			if run == open {
				end = j + run
				break
			}
			j += run
		}
		if end < 0 {
			i += open
			continue
		}
		for k := i; k < end; k++ {
			out[k] = ' '
		}
		i = end
	}
	return string(out)
}

func backtickRun(b []byte, start int) int {
	n := 0
	for start+n < len(b) && b[start+n] == '`' {
		n++
	}
	return n
}

// maskedText joins maskedLines back together so multi-line constructs can be
// matched by offset.
func maskedText(src []byte) string {
	return strings.Join(maskedLines(src), "\n")
}

// lineAt converts a byte offset in text to a 1-based line number.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
