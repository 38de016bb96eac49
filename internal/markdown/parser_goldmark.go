package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-site/pkg/interfaces"
)

// GoldmarkParser renders MDX bodies to HTML. ESM import and export lines are
// dropped before conversion; component tags pass through as raw HTML unless
// SafeMode is set.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser builds a parser for defaults. With no extensions named it
// enables GFM, linkify and task lists.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engine:   buildEngine(defaults),
	}
}

// Parse renders body with the parser defaults.
func (p *GoldmarkParser) Parse(body []byte) ([]byte, error) {
	return render(p.engine, body)
}

// ParseWithOptions renders body with opts, reusing the default engine when
// opts match the defaults.
func (p *GoldmarkParser) ParseWithOptions(body []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if sameOptions(opts, p.defaults) {
		return render(p.engine, body)
	}
	return render(buildEngine(opts), body)
}

// StripESM removes top level import and export statements from an MDX body.
func StripESM(body []byte) []byte {
	return importLinePattern.ReplaceAll(body, nil)
}

func render(engine goldmark.Markdown, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(StripESM(body), &buf); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

func sameOptions(a, b interfaces.ParseOptions) bool {
	return a.HardWraps == b.HardWraps &&
		a.SafeMode == b.SafeMode &&
		slices.Equal(a.Extensions, b.Extensions)
}

func buildEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(resolveExtensions(opts.Extensions)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

var knownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

var defaultExtensions = []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}

// resolveExtensions maps configured names onto goldmark extenders. Unknown and
// repeated names are ignored.
func resolveExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return defaultExtensions
	}
	seen := make(map[string]bool, len(names))
	out := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := knownExtensions[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ext)
	}
	return out
}
