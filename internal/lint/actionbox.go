package lint

import (
	"context"
	"io/fs"
	"regexp"
	"strings"
)

var (
	actionBoxComponent = regexp.MustCompile(`<ActionBox\b`)
	actionHeading      = regexp.MustCompile(`(?i)^\s{0,3}#{2,3}\s+(next steps|take action|ready to get started|key takeaways)\b`)
)

// ActionBoxResult reports whether a post closes with a call to action and
// which marker satisfied it.
type ActionBoxResult struct {
	File         string `json:"file"`
	HasActionBox bool   `json:"hasActionBox"`
	Marker       string `json:"marker,omitempty"`
	Line         int    `json:"line,omitempty"`
}

// CheckActionBox looks for an <ActionBox> component or a call-to-action
// heading outside front matter and code.
func CheckActionBox(file string, src []byte) ActionBoxResult {
	result := ActionBoxResult{File: file}
	for i, line := range maskedLines(src) {
		if actionBoxComponent.MatchString(line) {
			return ActionBoxResult{File: file, HasActionBox: true, Marker: "ActionBox", Line: i + 1}
		}
		if match := actionHeading.FindStringSubmatch(line); match != nil {
			return ActionBoxResult{File: file, HasActionBox: true, Marker: strings.TrimSpace(match[1]), Line: i + 1}
		}
	}
	return result
}

// AuditActionBoxes checks every source under dir.
func AuditActionBoxes(ctx context.Context, fsys fs.FS, dir string, patterns []string) ([]ActionBoxResult, error) {
	sources, err := ReadSources(ctx, fsys, dir, patterns)
	if err != nil {
		return nil, err
	}
	results := make([]ActionBoxResult, 0, len(sources))
	for _, source := range sources {
		results = append(results, CheckActionBox(source.Path, source.Data))
	}
	return results, nil
}
