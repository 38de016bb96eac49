package interfaces

import "time"

// MarkdownParser converts Markdown (or MDX with embedded components) into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Option names stay readable so
// they can be bound from YAML configuration.
type ParseOptions struct {
	Extensions []string `yaml:"extensions" json:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps" json:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode" json:"safe_mode"`
}

// Document is a content file with its parsed front matter and raw body.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the file on disk.
	Checksum []byte
}

// FrontMatter models the metadata block at the top of an MDX file. Keys the
// site does not know about are preserved in Custom.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Excerpt     string         `yaml:"excerpt" json:"excerpt"`
	Author      string         `yaml:"author" json:"author"`
	Category    string         `yaml:"category" json:"category"`
	Image       string         `yaml:"image" json:"image"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Date        time.Time      `yaml:"date" json:"date"`
	Draft       bool           `yaml:"draft" json:"draft"`
	ReadingTime int            `yaml:"reading_time" json:"reading_time"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
}
