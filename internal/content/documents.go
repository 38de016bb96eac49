package content

import (
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-site/internal/markdown"
	"github.com/goliatone/go-site/internal/validation"
	"github.com/goliatone/go-site/pkg/interfaces"
)

const excerptLength = 160

func insightFromDocument(doc *interfaces.Document) (Insight, error) {
	fm := doc.FrontMatter
	insight := Insight{
		Slug:        fm.Slug,
		Title:       strings.TrimSpace(fm.Title),
		Excerpt:     strings.TrimSpace(fm.Excerpt),
		Author:      strings.TrimSpace(fm.Author),
		Category:    strings.TrimSpace(fm.Category),
		Image:       strings.TrimSpace(fm.Image),
		Tags:        cleanTags(fm.Tags),
		Date:        fm.Date,
		ReadingTime: fm.ReadingTime,
		Featured:    customBool(fm.Custom, "featured"),
		Draft:       fm.Draft,
		Body:        string(doc.Body),
		FilePath:    doc.FilePath,
	}
	if insight.Excerpt == "" {
		insight.Excerpt = markdown.Excerpt(doc.Body, excerptLength)
	}

	err := ozzo.ValidateStruct(&insight,
		ozzo.Field(&insight.Slug, ozzo.Required, ozzo.Match(slugPattern)),
		ozzo.Field(&insight.Title, ozzo.Required),
		ozzo.Field(&insight.Date, ozzo.Required),
	)
	if err != nil {
		return Insight{}, fmt.Errorf("%w: %s: %w", ErrInsightInvalid, doc.FilePath, validation.NewFieldError(err))
	}
	return insight, nil
}

func caseStudyFromDocument(doc *interfaces.Document) (CaseStudy, error) {
	fm := doc.FrontMatter
	study := CaseStudy{
		Slug:     fm.Slug,
		Title:    strings.TrimSpace(fm.Title),
		Client:   customString(fm.Custom, "client"),
		Industry: customString(fm.Custom, "industry"),
		Excerpt:  strings.TrimSpace(fm.Excerpt),
		Image:    strings.TrimSpace(fm.Image),
		Services: customStrings(fm.Custom, "services"),
		Results:  customStrings(fm.Custom, "results"),
		Tags:     cleanTags(fm.Tags),
		Date:     fm.Date,
		Body:     string(doc.Body),
		FilePath: doc.FilePath,
	}
	if study.Excerpt == "" {
		study.Excerpt = markdown.Excerpt(doc.Body, excerptLength)
	}

	err := ozzo.ValidateStruct(&study,
		ozzo.Field(&study.Slug, ozzo.Required, ozzo.Match(slugPattern)),
		ozzo.Field(&study.Title, ozzo.Required),
		ozzo.Field(&study.Client, ozzo.Required),
	)
	if err != nil {
		return CaseStudy{}, fmt.Errorf("%w: %s: %w", ErrCaseStudyInvalid, doc.FilePath, validation.NewFieldError(err))
	}
	return study, nil
}

func customString(custom map[string]any, key string) string {
	value, ok := custom[key]
	if !ok || value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func customStrings(custom map[string]any, key string) []string {
	switch typed := custom[key].(type) {
	case []string:
		return cloneStrings(typed)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if item == nil {
				continue
			}
			if text := strings.TrimSpace(fmt.Sprint(item)); text != "" {
				out = append(out, text)
			}
		}
		return out
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			return []string{trimmed}
		}
	}
	return nil
}

func customBool(custom map[string]any, key string) bool {
	value, _ := custom[key].(bool)
	return value
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
