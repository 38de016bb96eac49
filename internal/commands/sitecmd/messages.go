package sitecmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	accessibilityMessageType = "site.lint.accessibility"
	linksMessageType         = "site.lint.links"
	actionBoxMessageType     = "site.lint.action_box"
	buildIndexMessageType    = "site.search.build_index"
)

// AuditAccessibilityCommand scans Dir for accessibility problems and writes
// the JSON report to ReportPath.
type AuditAccessibilityCommand struct {
	Dir        string `json:"dir"`
	ReportPath string `json:"report_path"`
}

func (AuditAccessibilityCommand) Type() string { return accessibilityMessageType }

func (cmd AuditAccessibilityCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.Required),
		validation.Field(&cmd.ReportPath, validation.Required),
	)
}

// CheckLinksCommand counts internal insight and tool links per file.
type CheckLinksCommand struct {
	Dir             string `json:"dir"`
	MinInsightLinks int    `json:"min_insight_links"`
	MinToolLinks    int    `json:"min_tool_links"`
}

func (CheckLinksCommand) Type() string { return linksMessageType }

func (cmd CheckLinksCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.Required),
		validation.Field(&cmd.MinInsightLinks, validation.Min(0)),
		validation.Field(&cmd.MinToolLinks, validation.Min(0)),
	)
}

// CheckActionBoxCommand reports which files close with a call to action.
type CheckActionBoxCommand struct {
	Dir string `json:"dir"`
}

func (CheckActionBoxCommand) Type() string { return actionBoxMessageType }

func (cmd CheckActionBoxCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.Required),
	)
}

// BuildIndexCommand loads the content catalog and builds the search index.
// When Output is set the results are written there as JSON; "-" means the
// handler's writer.
type BuildIndexCommand struct {
	Output string `json:"output,omitempty"`
}

func (BuildIndexCommand) Type() string { return buildIndexMessageType }

func (BuildIndexCommand) Validate() error { return nil }
