package lint

import (
	"context"
	"io/fs"
	"regexp"
)

// Requirements sets the minimum internal links a post needs.
type Requirements struct {
	MinInsightLinks int
	MinToolLinks    int
}

// DefaultRequirements asks for two insight links and one tool link.
var DefaultRequirements = Requirements{MinInsightLinks: 2, MinToolLinks: 1}

var (
	markdownTargetPattern = regexp.MustCompile(`\]\(\s*<?(/[^)\s>]*)`)
	hrefTargetPattern     = regexp.MustCompile(`(?i)\bhref\s*=\s*\{?\s*["'](/[^"']*)["']`)
)

const (
	insightPrefix = "/insights/"
	toolPrefix    = "/tools/"
)

// LinkResult summarises the internal links of one file.
type LinkResult struct {
	File             string `json:"file"`
	InsightLinks     int    `json:"insightLinks"`
	ToolLinks        int    `json:"toolLinks"`
	HasRequiredLinks bool   `json:"hasRequiredLinks"`
}

// CheckInternalLinks counts markdown and href links to insights and tools.
func CheckInternalLinks(file string, src []byte, req Requirements) LinkResult {
	text := maskedText(src)
	result := LinkResult{File: file}

	count := func(target string) {
		switch {
		case hasPathPrefix(target, insightPrefix):
			result.InsightLinks++
		case hasPathPrefix(target, toolPrefix):
			result.ToolLinks++
		}
	}
	for _, match := range markdownTargetPattern.FindAllStringSubmatch(text, -1) {
		count(match[1])
	}
	for _, match := range hrefTargetPattern.FindAllStringSubmatch(text, -1) {
		count(match[1])
	}

	result.HasRequiredLinks = result.InsightLinks >= req.MinInsightLinks && result.ToolLinks >= req.MinToolLinks
	return result
}

// AuditInternalLinks checks every source under dir.
func AuditInternalLinks(ctx context.Context, fsys fs.FS, dir string, patterns []string, req Requirements) ([]LinkResult, error) {
	sources, err := ReadSources(ctx, fsys, dir, patterns)
	if err != nil {
		return nil, err
	}
	results := make([]LinkResult, 0, len(sources))
	for _, source := range sources {
		results = append(results, CheckInternalLinks(source.Path, source.Data, req))
	}
	return results, nil
}

func hasPathPrefix(target, prefix string) bool {
	return len(target) > len(prefix) && target[:len(prefix)] == prefix
}
