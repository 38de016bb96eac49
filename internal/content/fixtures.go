package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-site/internal/markdown"
	"github.com/goliatone/go-site/internal/validation"
)

const (
	eventsFixture        = "events.json"
	jobsFixture          = "jobs.json"
	toolsFixture         = "tools.json"
	leadershipFixture    = "leadership.json"
	testimonialsFixture  = "testimonials.json"
	pressReleasesFixture = "press-releases.json"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var (
	eventsSchema        = mustSchema("events")
	jobsSchema          = mustSchema("jobs")
	toolsSchema         = mustSchema("tools")
	leadershipSchema    = mustSchema("leadership")
	testimonialsSchema  = mustSchema("testimonials")
	pressReleasesSchema = mustSchema("press-releases")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func mustSchema(name string) *validation.Schema {
	file := "schemas/" + name + ".schema.json"
	source, err := schemaFiles.ReadFile(file)
	if err != nil {
		panic(fmt.Sprintf("content: missing embedded schema %s: %v", file, err))
	}
	return validation.MustCompileSchema(name+".schema.json", source)
}

type validatable interface {
	Validate() error
}

// decodeFixture validates raw JSON against schema before decoding it, then
// runs each record's field rules. A missing file yields no records.
func decodeFixture[W validatable](fsys fs.FS, dir, file string, schema *validation.Schema) ([]W, error) {
	name := path.Join(dir, file)
	raw, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}

	if err := schema.ValidateJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFixtureInvalid, name, err)
	}

	var records []W
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("content: decode %s: %w", name, err)
	}
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrFixtureInvalid, name, i, validation.NewFieldError(err))
		}
	}
	return records, nil
}

var dateRule = ozzo.By(func(value any) error {
	text, _ := value.(string)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if _, err := markdown.ParseDate(text); err != nil {
		return ozzo.NewError("validation_is_date", "must be a valid date")
	}
	return nil
})

var linkRule = ozzo.By(func(value any) error {
	text, _ := value.(string)
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	return is.URL.Validate(text)
})

func parsedDate(value string) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	parsed, err := markdown.ParseDate(value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

type eventRecord struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Type            string   `json:"type"`
	Location        string   `json:"location"`
	Virtual         bool     `json:"virtual"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	RegistrationURL string   `json:"registrationUrl"`
	Speakers        []string `json:"speakers"`
	Tags            []string `json:"tags"`
}

func (r eventRecord) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Slug, ozzo.Required, ozzo.Match(slugPattern)),
		ozzo.Field(&r.Title, ozzo.Required),
		ozzo.Field(&r.Type, ozzo.Required, ozzo.In(string(EventWebinar), string(EventWorkshop), string(EventConference), string(EventMeetup))),
		ozzo.Field(&r.StartDate, ozzo.Required, dateRule),
		ozzo.Field(&r.EndDate, dateRule),
		ozzo.Field(&r.RegistrationURL, linkRule),
	)
}

func (r eventRecord) toEvent() Event {
	return Event{
		Slug:            r.Slug,
		Title:           r.Title,
		Description:     r.Description,
		Type:            EventType(r.Type),
		Location:        r.Location,
		Virtual:         r.Virtual,
		Start:           parsedDate(r.StartDate),
		End:             parsedDate(r.EndDate),
		RegistrationURL: r.RegistrationURL,
		Speakers:        cloneStrings(r.Speakers),
		Tags:            cloneStrings(r.Tags),
	}
}

type jobRecord struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Remote       bool     `json:"remote"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	PostedAt     string   `json:"postedAt"`
}

func (r jobRecord) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Slug, ozzo.Required, ozzo.Match(slugPattern)),
		ozzo.Field(&r.Title, ozzo.Required),
		ozzo.Field(&r.Department, ozzo.Required),
		ozzo.Field(&r.Location, ozzo.Required),
		ozzo.Field(&r.Type, ozzo.Required, ozzo.In(string(EmploymentFullTime), string(EmploymentPartTime), string(EmploymentContract), string(EmploymentInternship))),
		ozzo.Field(&r.PostedAt, dateRule),
	)
}

func (r jobRecord) toJob() Job {
	return Job{
		Slug:         r.Slug,
		Title:        r.Title,
		Department:   r.Department,
		Location:     r.Location,
		Type:         EmploymentType(r.Type),
		Remote:       r.Remote,
		Description:  r.Description,
		Requirements: cloneStrings(r.Requirements),
		PostedAt:     parsedDate(r.PostedAt),
	}
}

type toolRecord struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

func (r toolRecord) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Slug, ozzo.Required, ozzo.Match(slugPattern)),
		ozzo.Field(&r.Name, ozzo.Required),
		ozzo.Field(&r.Description, ozzo.Required),
		ozzo.Field(&r.URL, linkRule),
	)
}

func (r toolRecord) toTool() Tool {
	return Tool{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		URL:         r.URL,
		Tags:        cloneStrings(r.Tags),
		Featured:    r.Featured,
	}
}

type leaderRecord struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	LinkedIn string `json:"linkedin"`
	Order    int    `json:"order"`
}

func (r leaderRecord) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Name, ozzo.Required),
		ozzo.Field(&r.Role, ozzo.Required),
		ozzo.Field(&r.LinkedIn, is.URL),
		ozzo.Field(&r.Order, ozzo.Min(0)),
	)
}

func (r leaderRecord) toLeader() Leader {
	return Leader(r)
}

type testimonialRecord struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Featured bool   `json:"featured"`
}

func (r testimonialRecord) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Quote, ozzo.Required),
		ozzo.Field(&r.Author, ozzo.Required),
	)
}

func (r testimonialRecord) toTestimonial() Testimonial {
	return Testimonial(r)
}

type pressReleaseRecord struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Publication string `json:"publication"`
	URL         string `json:"url"`
	Date        string `json:"date"`
}

func (r pressReleaseRecord) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Slug, ozzo.Required, ozzo.Match(slugPattern)),
		ozzo.Field(&r.Title, ozzo.Required),
		ozzo.Field(&r.Date, ozzo.Required, dateRule),
		ozzo.Field(&r.URL, linkRule),
	)
}

func (r pressReleaseRecord) toPressRelease() PressRelease {
	return PressRelease{
		Slug:        r.Slug,
		Title:       r.Title,
		Summary:     r.Summary,
		Publication: r.Publication,
		URL:         r.URL,
		Date:        parsedDate(r.Date),
	}
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
