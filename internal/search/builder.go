package search

import (
	"strings"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/routes"
)

// Source is the subset of the content catalog the index is built from.
type Source interface {
	Insights() []content.Insight
	Events() []content.Event
	Jobs() []content.Job
	Tools() []content.Tool
	CaseStudies() []content.CaseStudy
}

// URLBuilder resolves the public path of a record.
type URLBuilder interface {
	MustPath(route, slug string) string
}

// Build maps every record in source to exactly one Result, in source order:
// insights, events, jobs, tools, then case studies.
func Build(source Source, urls URLBuilder) []Result {
	if source == nil {
		return nil
	}

	var results []Result

	for _, insight := range source.Insights() {
		results = append(results, Result{
			ID:          resultID(TypeInsight, insight.Slug),
			Type:        TypeInsight,
			Title:       insight.Title,
			Description: insight.Excerpt,
			URL:         resolve(urls, routes.Insight, insight.Slug),
			Metadata: compactMetadata(map[string]any{
				"author":      insight.Author,
				"category":    insight.Category,
				"tags":        joinList(insight.Tags),
				"date":        content.FormatDate(insight.Date),
				"readingTime": insight.ReadingTime,
			}),
		})
	}

	for _, event := range source.Events() {
		results = append(results, Result{
			ID:          resultID(TypeEvent, event.Slug),
			Type:        TypeEvent,
			Title:       event.Title,
			Description: event.Description,
			URL:         resolve(urls, routes.Event, event.Slug),
			Metadata: compactMetadata(map[string]any{
				"eventType": string(event.Type),
				"location":  event.Location,
				"virtual":   event.Virtual,
				"date":      content.FormatDateRange(event.Start, event.End),
				"speakers":  joinList(event.Speakers),
				"tags":      joinList(event.Tags),
			}),
		})
	}

	for _, job := range source.Jobs() {
		results = append(results, Result{
			ID:          resultID(TypeJob, job.Slug),
			Type:        TypeJob,
			Title:       job.Title,
			Description: job.Description,
			URL:         resolve(urls, routes.Job, job.Slug),
			Metadata: compactMetadata(map[string]any{
				"department":     job.Department,
				"location":       job.Location,
				"employmentType": string(job.Type),
				"remote":         job.Remote,
			}),
		})
	}

	for _, tool := range source.Tools() {
		results = append(results, Result{
			ID:          resultID(TypeTool, tool.Slug),
			Type:        TypeTool,
			Title:       tool.Name,
			Description: tool.Description,
			URL:         resolve(urls, routes.Tool, tool.Slug),
			Metadata: compactMetadata(map[string]any{
				"category": tool.Category,
				"tags":     joinList(tool.Tags),
				"featured": tool.Featured,
			}),
		})
	}

	for _, study := range source.CaseStudies() {
		results = append(results, Result{
			ID:          resultID(TypeCaseStudy, study.Slug),
			Type:        TypeCaseStudy,
			Title:       study.Title,
			Description: study.Excerpt,
			URL:         resolve(urls, routes.CaseStudy, study.Slug),
			Metadata: compactMetadata(map[string]any{
				"client":   study.Client,
				"industry": study.Industry,
				"services": joinList(study.Services),
				"tags":     joinList(study.Tags),
			}),
		})
	}

	return results
}

func resultID(kind Type, slug string) string {
	return string(kind) + "-" + slug
}

func resolve(urls URLBuilder, route, slug string) string {
	if urls == nil {
		return "/" + route + "/" + slug
	}
	return urls.MustPath(route, slug)
}

func joinList(values []string) string {
	return strings.Join(values, ", ")
}

// compactMetadata drops empty strings so absent fields never match or render.
func compactMetadata(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		if text, ok := value.(string); ok && strings.TrimSpace(text) == "" {
			continue
		}
		out[key] = value
	}
	return out
}
