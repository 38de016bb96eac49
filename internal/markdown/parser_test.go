package markdown

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-site/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.mdx")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Sample Insight" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Slug != "sample-insight" {
		t.Fatalf("FrontMatter Slug mismatch, got %q", fm.Slug)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "cloud" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Excerpt != "Sample excerpt goes here" {
		t.Fatalf("FrontMatter Excerpt mismatch, got %q", fm.Excerpt)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !fm.Date.Equal(want) {
		t.Fatalf("FrontMatter Date mismatch, got %v", fm.Date)
	}
	if fm.Custom["hero_variant"] != "dark" {
		t.Fatalf("FrontMatter Custom value missing: %#v", fm.Custom)
	}
	if !strings.Contains(string(body), "# Sample Insight") {
		t.Fatalf("body not returned correctly: %q", string(body))
	}
	if strings.Contains(string(body), "title:") {
		t.Fatalf("body still contains front matter: %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("plain body"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" {
		t.Fatalf("expected empty title, got %q", fm.Title)
	}
	if string(body) != "plain body" {
		t.Fatalf("expected body unchanged, got %q", string(body))
	}
}

func TestParseFrontMatterRejectsBadDate(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: Bad\ndate: someday\n---\nbody"))
	if err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestBuildDocumentDerivesTitleAndSlug(t *testing.T) {
	modified := time.Now().UTC()

	doc, err := BuildDocument("insights/cloud-cost-review.mdx", []byte("Some words here."), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FrontMatter.Title != "Cloud Cost Review" {
		t.Fatalf("expected derived title, got %q", doc.FrontMatter.Title)
	}
	if doc.FrontMatter.Slug != "cloud-cost-review" {
		t.Fatalf("expected derived slug, got %q", doc.FrontMatter.Slug)
	}
	if doc.FrontMatter.ReadingTime != 1 {
		t.Fatalf("expected reading time 1, got %d", doc.FrontMatter.ReadingTime)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
}

func TestGoldmarkParserRendersMDXBody(t *testing.T) {
	body := []byte("import ActionBox from '@/components/ActionBox'\n\n## Idle capacity\n\nTrim **spend** first.\n\n<ActionBox title=\"Book a review\" />\n")

	out, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(out)
	if strings.Contains(got, "import ActionBox") {
		t.Fatalf("expected import statement to be stripped, got %q", got)
	}
	if !strings.Contains(got, `<h2 id="idle-capacity">Idle capacity</h2>`) {
		t.Fatalf("expected heading with generated id, got %q", got)
	}
	if !strings.Contains(got, "<strong>spend</strong>") {
		t.Fatalf("expected emphasis to render, got %q", got)
	}
	if !strings.Contains(got, "<ActionBox") {
		t.Fatalf("expected component tag to pass through, got %q", got)
	}
}

func TestGoldmarkParserOverrides(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	cases := []struct {
		name    string
		opts    interfaces.ParseOptions
		body    string
		want    string
		notWant string
	}{
		{
			name:    "safe mode drops components",
			opts:    interfaces.ParseOptions{SafeMode: true},
			body:    "<ActionBox>cta</ActionBox>\n\ntext",
			want:    "<p>text</p>",
			notWant: "<ActionBox>",
		},
		{
			name: "hard wraps",
			opts: interfaces.ParseOptions{HardWraps: true},
			body: "line one\nline two",
			want: "line one<br>",
		},
		{
			name:    "explicit extensions replace defaults",
			opts:    interfaces.ParseOptions{Extensions: []string{"typographer", "bogus"}},
			body:    "see https://northwind.test",
			notWant: "<a href",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := parser.ParseWithOptions([]byte(tc.body), tc.opts)
			if err != nil {
				t.Fatalf("ParseWithOptions: %v", err)
			}
			got := string(out)
			if tc.want != "" && !strings.Contains(got, tc.want) {
				t.Fatalf("expected %q in %q", tc.want, got)
			}
			if tc.notWant != "" && strings.Contains(got, tc.notWant) {
				t.Fatalf("did not expect %q in %q", tc.notWant, got)
			}
		})
	}
}

func TestStripESM(t *testing.T) {
	body := "import A from 'a'\nexport const meta = {}\nimported words stay\n"
	got := string(StripESM([]byte(body)))
	if strings.Contains(got, "import A") || strings.Contains(got, "export const") {
		t.Fatalf("expected ESM lines removed, got %q", got)
	}
	if !strings.Contains(got, "imported words stay") {
		t.Fatalf("expected prose kept, got %q", got)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
