package content

import (
	"slices"
	"time"
)

// Insight is an article published under /insights.
type Insight struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags"`
	Date        time.Time `json:"date"`
	ReadingTime int       `json:"readingTime"`
	Featured    bool      `json:"featured"`
	Draft       bool      `json:"-"`
	Body        string    `json:"-"`
	HTML        string    `json:"-"`
	FilePath    string    `json:"-"`
}

func (i Insight) clone() Insight {
	i.Tags = slices.Clone(i.Tags)
	return i
}

// CaseStudy is a client engagement write-up published under /case-studies.
type CaseStudy struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Client   string    `json:"client"`
	Industry string    `json:"industry"`
	Excerpt  string    `json:"excerpt"`
	Image    string    `json:"image,omitempty"`
	Services []string  `json:"services"`
	Results  []string  `json:"results"`
	Tags     []string  `json:"tags"`
	Date     time.Time `json:"date"`
	Body     string    `json:"-"`
	HTML     string    `json:"-"`
	FilePath string    `json:"-"`
}

func (s CaseStudy) clone() CaseStudy {
	s.Services = slices.Clone(s.Services)
	s.Results = slices.Clone(s.Results)
	s.Tags = slices.Clone(s.Tags)
	return s
}

// EventType enumerates the formats an event can take.
type EventType string

const (
	EventWebinar    EventType = "webinar"
	EventWorkshop   EventType = "workshop"
	EventConference EventType = "conference"
	EventMeetup     EventType = "meetup"
)

type Event struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Type            EventType `json:"type"`
	Location        string    `json:"location"`
	Virtual         bool      `json:"virtual"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	RegistrationURL string    `json:"registrationUrl,omitempty"`
	Speakers        []string  `json:"speakers"`
	Tags            []string  `json:"tags"`
}

func (e Event) clone() Event {
	e.Speakers = slices.Clone(e.Speakers)
	e.Tags = slices.Clone(e.Tags)
	return e
}

// Ends returns the end of the event, falling back to Start for single-point
// events.
func (e Event) Ends() time.Time {
	if e.End.IsZero() {
		return e.Start
	}
	return e.End
}

// EmploymentType enumerates job contract kinds.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

type Job struct {
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	Department   string         `json:"department"`
	Location     string         `json:"location"`
	Type         EmploymentType `json:"type"`
	Remote       bool           `json:"remote"`
	Description  string         `json:"description"`
	Requirements []string       `json:"requirements"`
	PostedAt     time.Time      `json:"postedAt"`
}

func (j Job) clone() Job {
	j.Requirements = slices.Clone(j.Requirements)
	return j
}

type Tool struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

func (t Tool) clone() Tool {
	t.Tags = slices.Clone(t.Tags)
	return t
}

type Leader struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Image    string `json:"image,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Order    int    `json:"order"`
}

type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Featured bool   `json:"featured"`
}

type PressRelease struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Publication string    `json:"publication,omitempty"`
	URL         string    `json:"url,omitempty"`
	Date        time.Time `json:"date"`
}
