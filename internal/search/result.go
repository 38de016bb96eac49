package search

import "strings"

// Type identifies which content collection a Result came from.
type Type string

const (
	TypeInsight   Type = "insight"
	TypeEvent     Type = "event"
	TypeJob       Type = "job"
	TypeTool      Type = "tool"
	TypeCaseStudy Type = "case-study"
)

// Types lists every result type in index build order.
var Types = []Type{TypeInsight, TypeEvent, TypeJob, TypeTool, TypeCaseStudy}

// ParseType accepts the wire name of a type, case-insensitively.
func ParseType(value string) (Type, bool) {
	candidate := Type(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Types {
		if candidate == known {
			return known, true
		}
	}
	return "", false
}

// Result is the flattened, type-agnostic shape every query runs against.
// Metadata values are strings, numbers or booleans.
type Result struct {
	ID          string         `json:"id"`
	Type        Type           `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
