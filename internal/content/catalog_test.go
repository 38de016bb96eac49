package content_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/internal/validation"
)

func loadTestCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	catalog, err := content.Load(context.Background(), os.DirFS("testdata/site"), content.Options{
		InsightsDir:    "insights",
		CaseStudiesDir: "case-studies",
		DataDir:        "data",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return catalog
}

func TestLoadInsightsNewestFirstWithoutDrafts(t *testing.T) {
	catalog := loadTestCatalog(t)

	insights := catalog.Insights()
	want := []string{"platform-engineering-playbook", "cloud-cost-review", "ai-readiness"}
	if len(insights) != len(want) {
		t.Fatalf("expected %d insights, got %d", len(want), len(insights))
	}
	for i, slug := range want {
		if insights[i].Slug != slug {
			t.Fatalf("insight %d: expected %s, got %s", i, slug, insights[i].Slug)
		}
	}

	first, err := catalog.Insight("cloud-cost-review")
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if first.Author != "Ada Lovelace" || !first.Featured {
		t.Fatalf("unexpected insight %+v", first)
	}
	if first.Excerpt != "A practical walkthrough of a cloud cost review." {
		t.Fatalf("unexpected excerpt %q", first.Excerpt)
	}
	if first.ReadingTime < 1 {
		t.Fatalf("expected reading time, got %d", first.ReadingTime)
	}
}

func TestLoadIncludeDrafts(t *testing.T) {
	catalog, err := content.Load(context.Background(), os.DirFS("testdata/site"), content.Options{
		InsightsDir:   "insights",
		IncludeDrafts: true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(catalog.Insights()); got != 4 {
		t.Fatalf("expected draft to be included, got %d insights", got)
	}
	if len(catalog.Events()) != 0 {
		t.Fatal("expected no events without a data directory")
	}
}

func TestInsightMissingReturnsNotFound(t *testing.T) {
	catalog := loadTestCatalog(t)

	_, err := catalog.Insight("does-not-exist")
	var notFound *content.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Resource != "insight" || notFound.Key != "does-not-exist" {
		t.Fatalf("unexpected not found error %+v", notFound)
	}
	if !content.IsNotFound(err) {
		t.Fatal("expected IsNotFound to match")
	}
}

func TestInsightFilters(t *testing.T) {
	catalog := loadTestCatalog(t)

	if got := catalog.InsightsByTag("CLOUD"); len(got) != 3 {
		t.Fatalf("expected 3 cloud insights, got %d", len(got))
	}
	if got := catalog.InsightsByCategory("strategy"); len(got) != 2 {
		t.Fatalf("expected 2 strategy insights, got %d", len(got))
	}

	tags := catalog.Tags()
	want := []string{"ai", "cloud", "devops", "finops", "platform", "strategy"}
	if len(tags) != len(want) {
		t.Fatalf("expected tags %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected tags %v, got %v", want, tags)
		}
	}
}

func TestRelatedInsights(t *testing.T) {
	catalog := loadTestCatalog(t)

	related, err := catalog.RelatedInsights("cloud-cost-review", 5)
	if err != nil {
		t.Fatalf("RelatedInsights: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected 2 related insights, got %d", len(related))
	}
	if related[0].Slug != "platform-engineering-playbook" {
		t.Fatalf("expected newest related first, got %s", related[0].Slug)
	}

	limited, _ := catalog.RelatedInsights("cloud-cost-review", 1)
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}

	if _, err := catalog.RelatedInsights("missing", 3); !content.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEventsSplitAroundNow(t *testing.T) {
	catalog := loadTestCatalog(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	upcoming := catalog.UpcomingEvents(now)
	if len(upcoming) != 1 || upcoming[0].Slug != "platform-summit-2030" {
		t.Fatalf("unexpected upcoming events %+v", upcoming)
	}
	past := catalog.PastEvents(now)
	if len(past) != 1 || past[0].Slug != "finops-workshop-2024" {
		t.Fatalf("unexpected past events %+v", past)
	}

	event, err := catalog.Event("finops-workshop-2024")
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if event.Type != content.EventWorkshop || event.End.IsZero() {
		t.Fatalf("unexpected event %+v", event)
	}
	if _, err := catalog.Event("nope"); !content.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestJobsToolsAndCaseStudies(t *testing.T) {
	catalog := loadTestCatalog(t)

	grouped := catalog.JobsByDepartment()
	if len(grouped["Engineering"]) != 2 || len(grouped["Delivery"]) != 1 {
		t.Fatalf("unexpected department grouping %v", grouped)
	}
	job, err := catalog.Job("senior-go-engineer")
	if err != nil || !job.Remote || job.Type != content.EmploymentFullTime {
		t.Fatalf("unexpected job %+v (%v)", job, err)
	}

	tool, err := catalog.Tool("cloud-cost-calculator")
	if err != nil || tool.Name != "Cloud Cost Calculator" {
		t.Fatalf("unexpected tool %+v (%v)", tool, err)
	}

	studies := catalog.CaseStudies()
	if len(studies) != 2 || studies[0].Slug != "clinic-scheduling" {
		t.Fatalf("unexpected case studies %+v", studies)
	}
	retail := catalog.CaseStudiesByIndustry("retail")
	if len(retail) != 1 || retail[0].Client != "Acme Retail" {
		t.Fatalf("unexpected retail case studies %+v", retail)
	}
	if len(retail[0].Services) != 2 || len(retail[0].Results) != 2 {
		t.Fatalf("expected services and results from front matter, got %+v", retail[0])
	}
	clinic, _ := catalog.CaseStudy("clinic-scheduling")
	if len(clinic.Services) != 1 || clinic.Services[0] != "Product Design" {
		t.Fatalf("expected scalar services to become a list, got %v", clinic.Services)
	}
}

func TestCompanyFixtures(t *testing.T) {
	catalog := loadTestCatalog(t)

	leaders := catalog.Leadership()
	if len(leaders) != 2 || leaders[0].Name != "Ada Lovelace" {
		t.Fatalf("expected leadership ordered by order, got %+v", leaders)
	}
	if featured := catalog.FeaturedTestimonials(); len(featured) != 1 || featured[0].Author != "Sam Carter" {
		t.Fatalf("unexpected featured testimonials %+v", featured)
	}
	releases := catalog.PressReleases()
	if len(releases) != 2 || releases[0].Slug != "berlin-office" {
		t.Fatalf("expected newest press release first, got %+v", releases)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	catalog := loadTestCatalog(t)

	insights := catalog.Insights()
	insights[0].Title = "mutated"
	if catalog.Insights()[0].Title == "mutated" {
		t.Fatal("expected Insights to return a copy")
	}
}

func TestAccessorsDoNotShareSlices(t *testing.T) {
	catalog := loadTestCatalog(t)

	insight, err := catalog.Insight("cloud-cost-review")
	if err != nil || len(insight.Tags) == 0 {
		t.Fatalf("unexpected insight %+v (%v)", insight, err)
	}
	original := insight.Tags[0]
	insight.Tags[0] = "mutated"
	catalog.Insights()[1].Tags[0] = "mutated"
	if got, _ := catalog.Insight("cloud-cost-review"); got.Tags[0] != original {
		t.Fatalf("expected tag %q to survive caller mutation, got %q", original, got.Tags[0])
	}

	retail := catalog.CaseStudiesByIndustry("retail")
	retail[0].Services[0] = "mutated"
	retail[0].Results = append(retail[0].Results[:0], "mutated")
	if again := catalog.CaseStudiesByIndustry("retail"); again[0].Services[0] == "mutated" || again[0].Results[0] == "mutated" {
		t.Fatalf("expected case study slices to be copied, got %+v", again[0])
	}

	for _, jobs := range catalog.JobsByDepartment() {
		for _, job := range jobs {
			if len(job.Requirements) > 0 {
				job.Requirements[0] = "mutated"
			}
		}
	}
	for _, job := range catalog.Jobs() {
		if len(job.Requirements) > 0 && job.Requirements[0] == "mutated" {
			t.Fatalf("expected job requirements to be copied, got %+v", job)
		}
	}
}

func TestLoadRejectsCaseStudyWithoutClient(t *testing.T) {
	_, err := content.Load(context.Background(), os.DirFS("testdata/invalid-case-study"), content.Options{CaseStudiesDir: "case-studies"})
	if !errors.Is(err, content.ErrCaseStudyInvalid) {
		t.Fatalf("expected ErrCaseStudyInvalid, got %v", err)
	}
	if errors.Is(err, content.ErrInsightInvalid) {
		t.Fatalf("case study failure reported as insight failure: %v", err)
	}
	if !strings.Contains(err.Error(), "case study failed validation") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	_, err := content.Load(context.Background(), os.DirFS("testdata/invalid-schema"), content.Options{DataDir: "data"})
	if !errors.Is(err, content.ErrFixtureInvalid) {
		t.Fatalf("expected ErrFixtureInvalid, got %v", err)
	}
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	if issues := validation.Issues(err); len(issues) == 0 {
		t.Fatal("expected schema issues to be reported")
	}
}

func TestLoadRejectsUnparseableDates(t *testing.T) {
	_, err := content.Load(context.Background(), os.DirFS("testdata/invalid-date"), content.Options{DataDir: "data"})
	if !errors.Is(err, content.ErrFixtureInvalid) {
		t.Fatalf("expected ErrFixtureInvalid, got %v", err)
	}
	issues := validation.Issues(err)
	if len(issues) != 1 || issues[0].Field != "startDate" {
		t.Fatalf("expected startDate issue, got %+v", issues)
	}
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := content.Load(ctx, os.DirFS("testdata/site"), content.Options{InsightsDir: "insights"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadRendersBodiesWithConfiguredParser(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig().Content
	cfg.InsightsDir = "insights"
	cfg.CaseStudiesDir = "case-studies"
	cfg.DataDir = ""

	catalog, err := content.Load(context.Background(), os.DirFS("testdata/site"), content.OptionsFromConfig(cfg, nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	insight, err := catalog.Insight("cloud-cost-review")
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if strings.Contains(insight.HTML, "import ActionBox") {
		t.Fatalf("expected import line stripped, got %q", insight.HTML)
	}
	if !strings.Contains(insight.HTML, `<h1 id="cloud-cost-review">Cloud Cost Review</h1>`) {
		t.Fatalf("expected rendered heading, got %q", insight.HTML)
	}
	if !strings.Contains(insight.HTML, `<a href="/tools/cloud-cost-calculator">`) {
		t.Fatalf("expected rendered link, got %q", insight.HTML)
	}

	for _, study := range catalog.CaseStudies() {
		if study.HTML == "" {
			t.Fatalf("expected case study %s to be rendered", study.Slug)
		}
	}
}

func TestLoadWithoutRendererKeepsHTMLEmpty(t *testing.T) {
	catalog := loadTestCatalog(t)
	for _, insight := range catalog.Insights() {
		if insight.HTML != "" {
			t.Fatalf("expected no HTML without a renderer, got %q", insight.HTML)
		}
	}
}
