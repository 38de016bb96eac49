package lint

import (
	"fmt"
	"io"
)

const (
	passMark = "✓"
	failMark = "✗"
)

// PrintAccessibility writes one line per file and a summary.
func PrintAccessibility(w io.Writer, report *AccessibilityReport, reportPath string) {
	byFile := map[string][]Issue{}
	var order []string
	for _, issue := range report.Issues {
		if _, seen := byFile[issue.File]; !seen {
			order = append(order, issue.File)
		}
		byFile[issue.File] = append(byFile[issue.File], issue)
	}

	for _, file := range order {
		fmt.Fprintf(w, "%s %s\n", failMark, file)
		for _, issue := range byFile[file] {
			fmt.Fprintf(w, "    line %d [%s] %s\n", issue.Line, issue.Severity, issue.Issue)
		}
	}
	if clean := report.FilesScanned - len(order); clean > 0 {
		fmt.Fprintf(w, "%s %d file(s) with no issues\n", passMark, clean)
	}
	fmt.Fprintf(w, "\nScanned %d file(s): %d error(s), %d warning(s)\n", report.FilesScanned, report.Errors, report.Warnings)
	if reportPath != "" {
		fmt.Fprintf(w, "Report written to %s\n", reportPath)
	}
}

// PrintLinks writes one line per file and a summary.
func PrintLinks(w io.Writer, results []LinkResult) {
	passing := 0
	for _, r := range results {
		mark := failMark
		if r.HasRequiredLinks {
			mark = passMark
			passing++
		}
		fmt.Fprintf(w, "%s %s (insights: %d, tools: %d)\n", mark, r.File, r.InsightLinks, r.ToolLinks)
	}
	fmt.Fprintf(w, "\n%d/%d file(s) meet the internal link requirements\n", passing, len(results))
}

// PrintActionBoxes writes one line per file and a summary.
func PrintActionBoxes(w io.Writer, results []ActionBoxResult) {
	passing := 0
	for _, r := range results {
		if r.HasActionBox {
			passing++
			fmt.Fprintf(w, "%s %s (%s, line %d)\n", passMark, r.File, r.Marker, r.Line)
			continue
		}
		fmt.Fprintf(w, "%s %s (no call to action)\n", failMark, r.File)
	}
	fmt.Fprintf(w, "\n%d/%d file(s) have a call to action\n", passing, len(results))
}
