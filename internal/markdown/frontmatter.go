package markdown

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-site/pkg/interfaces"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// ParseFrontMatter extracts metadata and the body from the provided source.
// Files without a front matter block are returned unchanged with empty metadata.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm, err := envelopeToFrontMatter(meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}
	return fm, body, nil
}

// BuildDocument assembles a Document from the file path, raw content and
// modification time. Missing titles and slugs are derived from the file name.
func BuildDocument(filePath string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	base := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	if strings.TrimSpace(fm.Title) == "" {
		fm.Title = TitleFromName(base)
	}
	fm.Slug = NormalizeSlug(fm.Slug, base)
	if fm.ReadingTime <= 0 {
		fm.ReadingTime = ReadingTime(body)
	}

	return &interfaces.Document{
		FilePath:     filePath,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

// TitleFromName turns a file name such as "cloud-cost-review" into
// "Cloud Cost Review".
func TitleFromName(name string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.TrimSpace(replaced))
}

// ParseDate accepts the date layouts authors use in front matter.
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD or RFC3339)", trimmed)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v", v)
	}
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Excerpt     string         `yaml:"excerpt"`
	Summary     string         `yaml:"summary"`
	Description string         `yaml:"description"`
	Author      string         `yaml:"author"`
	Category    string         `yaml:"category"`
	Image       string         `yaml:"image"`
	Tags        []string       `yaml:"tags"`
	Date        any            `yaml:"date"`
	Draft       bool           `yaml:"draft"`
	ReadingTime int            `yaml:"reading_time"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) (interfaces.FrontMatter, error) {
	date, err := ParseDate(env.Date)
	if err != nil {
		return interfaces.FrontMatter{}, fmt.Errorf("parse frontmatter date: %w", err)
	}

	excerpt := firstNonEmpty(env.Excerpt, env.Summary, env.Description)

	tags := make([]string, 0, len(env.Tags))
	for _, tag := range env.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	return interfaces.FrontMatter{
		Title:       strings.TrimSpace(env.Title),
		Slug:        strings.TrimSpace(env.Slug),
		Excerpt:     strings.TrimSpace(excerpt),
		Author:      strings.TrimSpace(env.Author),
		Category:    strings.TrimSpace(env.Category),
		Image:       strings.TrimSpace(env.Image),
		Tags:        tags,
		Date:        date,
		Draft:       env.Draft,
		ReadingTime: env.ReadingTime,
		Custom:      cloneMap(env.Custom),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
