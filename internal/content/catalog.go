package content

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/markdown"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// Options locates content inside the filesystem handed to Load.
type Options struct {
	InsightsDir    string
	CaseStudiesDir string
	DataDir        string
	Patterns       []string
	IncludeDrafts  bool
	// Renderer fills the HTML field of insights and case studies. Bodies are
	// left unrendered when nil.
	Renderer interfaces.MarkdownParser
	Logger   interfaces.Logger
}

// OptionsFromConfig maps the content section of the site config. Paths are
// relative to cfg.Dir, which callers open as the fs.FS root.
func OptionsFromConfig(cfg runtimeconfig.ContentConfig, logger interfaces.Logger) Options {
	return Options{
		InsightsDir:    cfg.InsightsDir,
		CaseStudiesDir: cfg.CaseStudiesDir,
		DataDir:        cfg.DataDir,
		Patterns:       cfg.Patterns,
		IncludeDrafts:  cfg.IncludeDrafts,
		Renderer:       markdown.NewGoldmarkParser(interfaces.ParseOptions(cfg.Parser)),
		Logger:         logger,
	}
}

// Catalog holds every typed content record. It is immutable after Load and
// safe for concurrent readers. Accessors return deep copies, so callers may
// mutate what they get back.
type Catalog struct {
	insights      []Insight
	caseStudies   []CaseStudy
	events        []Event
	jobs          []Job
	tools         []Tool
	leadership    []Leader
	testimonials  []Testimonial
	pressReleases []PressRelease
}

// NewCatalog assembles a catalog from already validated records, applying the
// same ordering Load does.
func NewCatalog(insights []Insight, caseStudies []CaseStudy, events []Event, jobs []Job, tools []Tool) *Catalog {
	c := &Catalog{
		insights:    slices.Clone(insights),
		caseStudies: slices.Clone(caseStudies),
		events:      slices.Clone(events),
		jobs:        slices.Clone(jobs),
		tools:       slices.Clone(tools),
	}
	c.sort()
	return c
}

// Load reads MDX documents and JSON fixtures from fsys. Missing directories and
// fixture files produce empty collections; invalid ones fail the load.
func Load(ctx context.Context, fsys fs.FS, opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{Patterns: opts.Patterns, Recursive: true})

	catalog := &Catalog{}

	insightDocs, err := loadDocuments(ctx, loader, opts.InsightsDir)
	if err != nil {
		return nil, err
	}
	for _, doc := range insightDocs {
		insight, err := insightFromDocument(doc)
		if err != nil {
			return nil, err
		}
		if insight.Draft && !opts.IncludeDrafts {
			logger.Debug("content.insight.draft_skipped", "slug", insight.Slug)
			continue
		}
		if insight.HTML, err = renderBody(opts.Renderer, doc); err != nil {
			return nil, err
		}
		catalog.insights = append(catalog.insights, insight)
	}

	studyDocs, err := loadDocuments(ctx, loader, opts.CaseStudiesDir)
	if err != nil {
		return nil, err
	}
	for _, doc := range studyDocs {
		study, err := caseStudyFromDocument(doc)
		if err != nil {
			return nil, err
		}
		if study.HTML, err = renderBody(opts.Renderer, doc); err != nil {
			return nil, err
		}
		catalog.caseStudies = append(catalog.caseStudies, study)
	}

	if err := catalog.loadFixtures(fsys, opts.DataDir); err != nil {
		return nil, err
	}

	if err := catalog.checkUniqueSlugs(); err != nil {
		return nil, err
	}
	catalog.sort()

	logger.Info("content.catalog.loaded",
		"insights", len(catalog.insights),
		"case_studies", len(catalog.caseStudies),
		"events", len(catalog.events),
		"jobs", len(catalog.jobs),
		"tools", len(catalog.tools),
	)
	return catalog, nil
}

func loadDocuments(ctx context.Context, loader *markdown.Loader, dir string) ([]*interfaces.Document, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	docs, err := loader.LoadDirectory(ctx, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", dir, err)
	}
	return docs, nil
}

func renderBody(renderer interfaces.MarkdownParser, doc *interfaces.Document) (string, error) {
	if renderer == nil {
		return "", nil
	}
	out, err := renderer.Parse(doc.Body)
	if err != nil {
		return "", fmt.Errorf("content: render %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = out
	return string(out), nil
}

func (c *Catalog) loadFixtures(fsys fs.FS, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return nil
	}

	events, err := decodeFixture[eventRecord](fsys, dir, eventsFixture, eventsSchema)
	if err != nil {
		return err
	}
	for _, record := range events {
		c.events = append(c.events, record.toEvent())
	}

	jobs, err := decodeFixture[jobRecord](fsys, dir, jobsFixture, jobsSchema)
	if err != nil {
		return err
	}
	for _, record := range jobs {
		c.jobs = append(c.jobs, record.toJob())
	}

	tools, err := decodeFixture[toolRecord](fsys, dir, toolsFixture, toolsSchema)
	if err != nil {
		return err
	}
	for _, record := range tools {
		c.tools = append(c.tools, record.toTool())
	}

	leaders, err := decodeFixture[leaderRecord](fsys, dir, leadershipFixture, leadershipSchema)
	if err != nil {
		return err
	}
	for _, record := range leaders {
		c.leadership = append(c.leadership, record.toLeader())
	}

	testimonials, err := decodeFixture[testimonialRecord](fsys, dir, testimonialsFixture, testimonialsSchema)
	if err != nil {
		return err
	}
	for _, record := range testimonials {
		c.testimonials = append(c.testimonials, record.toTestimonial())
	}

	releases, err := decodeFixture[pressReleaseRecord](fsys, dir, pressReleasesFixture, pressReleasesSchema)
	if err != nil {
		return err
	}
	for _, record := range releases {
		c.pressReleases = append(c.pressReleases, record.toPressRelease())
	}
	return nil
}

func (c *Catalog) checkUniqueSlugs() error {
	check := func(resource string, slugs []string) error {
		seen := make(map[string]struct{}, len(slugs))
		for _, slug := range slugs {
			if _, ok := seen[slug]; ok {
				return fmt.Errorf("%w: duplicate %s slug %q", ErrFixtureInvalid, resource, slug)
			}
			seen[slug] = struct{}{}
		}
		return nil
	}
	groups := []struct {
		resource string
		slugs    []string
	}{
		{"insight", collect(c.insights, func(v Insight) string { return v.Slug })},
		{"case study", collect(c.caseStudies, func(v CaseStudy) string { return v.Slug })},
		{"event", collect(c.events, func(v Event) string { return v.Slug })},
		{"job", collect(c.jobs, func(v Job) string { return v.Slug })},
		{"tool", collect(c.tools, func(v Tool) string { return v.Slug })},
		{"press release", collect(c.pressReleases, func(v PressRelease) string { return v.Slug })},
	}
	for _, group := range groups {
		if err := check(group.resource, group.slugs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) sort() {
	slices.SortStableFunc(c.insights, func(a, b Insight) int {
		return newestFirst(a.Date, b.Date, a.Slug, b.Slug)
	})
	slices.SortStableFunc(c.caseStudies, func(a, b CaseStudy) int {
		return newestFirst(a.Date, b.Date, a.Slug, b.Slug)
	})
	slices.SortStableFunc(c.events, func(a, b Event) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.Slug, b.Slug))
	})
	slices.SortStableFunc(c.leadership, func(a, b Leader) int {
		return cmp.Compare(a.Order, b.Order)
	})
	slices.SortStableFunc(c.pressReleases, func(a, b PressRelease) int {
		return newestFirst(a.Date, b.Date, a.Slug, b.Slug)
	})
}

func newestFirst(a, b time.Time, slugA, slugB string) int {
	return cmp.Or(b.Compare(a), cmp.Compare(slugA, slugB))
}

func collect[T any](items []T, key func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = key(item)
	}
	return out
}

// Insights returns published insights, newest first.
func (c *Catalog) Insights() []Insight {
	return cloneAll(c.insights, Insight.clone)
}

func (c *Catalog) Insight(slug string) (Insight, error) {
	for _, insight := range c.insights {
		if insight.Slug == slug {
			return insight.clone(), nil
		}
	}
	return Insight{}, &NotFoundError{Resource: "insight", Key: slug}
}

// InsightsByTag matches tags case-insensitively.
func (c *Catalog) InsightsByTag(tag string) []Insight {
	tag = strings.TrimSpace(tag)
	return cloneAll(filter(c.insights, func(insight Insight) bool {
		return containsFold(insight.Tags, tag)
	}), Insight.clone)
}

func (c *Catalog) InsightsByCategory(category string) []Insight {
	category = strings.TrimSpace(category)
	return cloneAll(filter(c.insights, func(insight Insight) bool {
		return strings.EqualFold(insight.Category, category)
	}), Insight.clone)
}

// RelatedInsights returns up to limit other insights sharing at least one tag
// with slug, ordered by shared tag count and then recency.
func (c *Catalog) RelatedInsights(slug string, limit int) ([]Insight, error) {
	source, err := c.Insight(slug)
	if err != nil {
		return nil, err
	}

	type scored struct {
		insight Insight
		shared  int
	}
	var candidates []scored
	for _, insight := range c.insights {
		if insight.Slug == source.Slug {
			continue
		}
		shared := 0
		for _, tag := range insight.Tags {
			if containsFold(source.Tags, tag) {
				shared++
			}
		}
		if shared > 0 {
			candidates = append(candidates, scored{insight: insight, shared: shared})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Or(cmp.Compare(b.shared, a.shared), b.insight.Date.Compare(a.insight.Date))
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]Insight, len(candidates))
	for i, candidate := range candidates {
		out[i] = candidate.insight.clone()
	}
	return out, nil
}

// Tags lists every insight tag once, sorted case-insensitively. The first
// spelling encountered wins.
func (c *Catalog) Tags() []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, insight := range c.insights {
		for _, tag := range insight.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.SortFunc(tags, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return tags
}

// UpcomingEvents returns events that have not ended at now, soonest first.
func (c *Catalog) UpcomingEvents(now time.Time) []Event {
	return cloneAll(filter(c.events, func(event Event) bool {
		return !event.Ends().Before(now)
	}), Event.clone)
}

// PastEvents returns events that ended before now, most recent first.
func (c *Catalog) PastEvents(now time.Time) []Event {
	past := filter(c.events, func(event Event) bool {
		return event.Ends().Before(now)
	})
	slices.Reverse(past)
	return cloneAll(past, Event.clone)
}

func (c *Catalog) Events() []Event {
	return cloneAll(c.events, Event.clone)
}

func (c *Catalog) Event(slug string) (Event, error) {
	for _, event := range c.events {
		if event.Slug == slug {
			return event.clone(), nil
		}
	}
	return Event{}, &NotFoundError{Resource: "event", Key: slug}
}

func (c *Catalog) Jobs() []Job {
	return cloneAll(c.jobs, Job.clone)
}

// JobsByDepartment groups open roles by department, keeping fixture order
// inside each group.
func (c *Catalog) JobsByDepartment() map[string][]Job {
	grouped := make(map[string][]Job)
	for _, job := range c.jobs {
		grouped[job.Department] = append(grouped[job.Department], job.clone())
	}
	return grouped
}

func (c *Catalog) Job(slug string) (Job, error) {
	for _, job := range c.jobs {
		if job.Slug == slug {
			return job.clone(), nil
		}
	}
	return Job{}, &NotFoundError{Resource: "job", Key: slug}
}

func (c *Catalog) Tools() []Tool {
	return cloneAll(c.tools, Tool.clone)
}

func (c *Catalog) Tool(slug string) (Tool, error) {
	for _, tool := range c.tools {
		if tool.Slug == slug {
			return tool.clone(), nil
		}
	}
	return Tool{}, &NotFoundError{Resource: "tool", Key: slug}
}

func (c *Catalog) CaseStudies() []CaseStudy {
	return cloneAll(c.caseStudies, CaseStudy.clone)
}

func (c *Catalog) CaseStudy(slug string) (CaseStudy, error) {
	for _, study := range c.caseStudies {
		if study.Slug == slug {
			return study.clone(), nil
		}
	}
	return CaseStudy{}, &NotFoundError{Resource: "case study", Key: slug}
}

func (c *Catalog) CaseStudiesByIndustry(industry string) []CaseStudy {
	industry = strings.TrimSpace(industry)
	return cloneAll(filter(c.caseStudies, func(study CaseStudy) bool {
		return strings.EqualFold(study.Industry, industry)
	}), CaseStudy.clone)
}

// Leadership returns the leadership team ordered by their order field.
func (c *Catalog) Leadership() []Leader {
	return slices.Clone(c.leadership)
}

func (c *Catalog) Testimonials() []Testimonial {
	return slices.Clone(c.testimonials)
}

func (c *Catalog) FeaturedTestimonials() []Testimonial {
	return filter(c.testimonials, func(t Testimonial) bool { return t.Featured })
}

// PressReleases returns press coverage, newest first.
func (c *Catalog) PressReleases() []PressRelease {
	return slices.Clone(c.pressReleases)
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}
