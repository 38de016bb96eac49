package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultReportPath is where the accessibility report is written.
const DefaultReportPath = "accessibility-report.json"

var (
	imgTagPattern       = regexp.MustCompile(`(?is)<img\b[^>]*>?`)
	altAttrPattern      = regexp.MustCompile(`(?i)(?:^|[\s<])alt\s*=`)
	emptyAltAttrPattern = regexp.MustCompile(`(?i)(?:^|[\s<])alt\s*=\s*(""|''|\{\s*""\s*\}|\{\s*''\s*\})`)
	emptyMarkdownAlt    = regexp.MustCompile(`!\[\s*\]\([^)]*\)`)
	markdownLinkText    = regexp.MustCompile(`(?im)(?:^|[^!])\[\s*(click here|here|read more)\s*\]\(`)
	anchorLinkText      = regexp.MustCompile(`(?i)<a\b[^>]*>\s*(click here|here|read more)\s*</a>`)
	atxHeadingPattern   = regexp.MustCompile(`^\s{0,3}(#{1,6})\s+\S`)
)

// AccessibilityReport is the JSON document written by the audit.
type AccessibilityReport struct {
	GeneratedAt  time.Time `json:"generatedAt"`
	FilesScanned int       `json:"filesScanned"`
	TotalIssues  int       `json:"totalIssues"`
	Errors       int       `json:"errors"`
	Warnings     int       `json:"warnings"`
	Issues       []Issue   `json:"issues"`
}

// HasErrors reports whether any issue has error severity.
func (r *AccessibilityReport) HasErrors() bool {
	return r != nil && r.Errors > 0
}

// ExitCode is 1 when the report holds errors and 0 otherwise.
func (r *AccessibilityReport) ExitCode() int {
	if r.HasErrors() {
		return 1
	}
	return 0
}

// AuditAccessibility checks every source and tallies the findings.
func AuditAccessibility(ctx context.Context, fsys fs.FS, dir string, patterns []string, now time.Time) (*AccessibilityReport, error) {
	sources, err := ReadSources(ctx, fsys, dir, patterns)
	if err != nil {
		return nil, err
	}

	report := &AccessibilityReport{
		GeneratedAt:  now.UTC(),
		FilesScanned: len(sources),
		Issues:       []Issue{},
	}
	for _, source := range sources {
		report.Issues = append(report.Issues, CheckAccessibility(source.Path, source.Data)...)
	}
	for _, issue := range report.Issues {
		switch issue.Severity {
		case SeverityError:
			report.Errors++
		case SeverityWarning:
			report.Warnings++
		}
	}
	report.TotalIssues = len(report.Issues)
	return report, nil
}

// CheckAccessibility returns the accessibility findings for one file, ordered
// by line.
func CheckAccessibility(file string, src []byte) []Issue {
	text := maskedText(src)
	var issues []Issue
	add := func(offset int, severity Severity, format string, args ...any) {
		issues = append(issues, Issue{
			File:     file,
			Line:     lineAt(text, offset),
			Issue:    fmt.Sprintf(format, args...),
			Severity: severity,
		})
	}

	for _, loc := range imgTagPattern.FindAllStringIndex(text, -1) {
		tag := text[loc[0]:loc[1]]
		switch {
		case !altAttrPattern.MatchString(tag):
			add(loc[0], SeverityError, "Image missing alt attribute")
		case emptyAltAttrPattern.MatchString(tag):
			add(loc[0], SeverityWarning, "Image has empty alt attribute")
		}
	}

	for _, loc := range emptyMarkdownAlt.FindAllStringIndex(text, -1) {
		add(loc[0], SeverityWarning, "Image has empty alt text")
	}

	for _, match := range markdownLinkText.FindAllStringSubmatchIndex(text, -1) {
		add(match[2], SeverityWarning, "Non-descriptive link text %q", strings.ToLower(text[match[2]:match[3]]))
	}
	for _, match := range anchorLinkText.FindAllStringSubmatchIndex(text, -1) {
		add(match[2], SeverityWarning, "Non-descriptive link text %q", strings.ToLower(text[match[2]:match[3]]))
	}

	issues = append(issues, checkHeadings(file, src)...)

	sortIssues(issues)
	return issues
}

func checkHeadings(file string, src []byte) []Issue {
	var (
		issues   []Issue
		previous int
		h1Count  int
	)
	for i, line := range maskedLines(src) {
		match := atxHeadingPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		level := len(match[1])
		if level == 1 {
			h1Count++
			if h1Count > 1 {
				issues = append(issues, Issue{File: file, Line: i + 1, Issue: "Multiple H1 headings", Severity: SeverityError})
			}
		}
		if previous > 0 && level > previous+1 {
			issues = append(issues, Issue{
				File:     file,
				Line:     i + 1,
				Issue:    fmt.Sprintf("Heading level skipped: h%d to h%d", previous, level),
				Severity: SeverityWarning,
			})
		}
		previous = level
	}
	return issues
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Line < issues[j].Line
	})
}

// WriteReport writes report as indented JSON, creating parent directories.
func WriteReport(path string, report *AccessibilityReport) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultReportPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("lint: create report dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("lint: encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("lint: write report: %w", err)
	}
	return nil
}
