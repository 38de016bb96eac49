package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Template names, one per transactional message.
const (
	TemplateContactNotification     = "contact_notification"
	TemplateContactConfirmation     = "contact_confirmation"
	TemplateWelcome                 = "welcome"
	TemplateEventNotification       = "event_notification"
	TemplateEventConfirmation       = "event_confirmation"
	TemplateInsightsNotification    = "insights_notification"
	TemplateInsightsWelcome         = "insights_welcome"
	TemplateUnsubscribeConfirmation = "unsubscribe_confirmation"
)

// View is the value every template renders.
type View struct {
	SiteName       string
	SiteURL        string
	UnsubscribeURL string
	Data           any
}

// Renderer produces the HTML and plain-text bodies of a template.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFiles, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("email: parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFiles, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("email: parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render executes name.html.tmpl and name.txt.tmpl with view.
func (r *Renderer) Render(name string, view View) (html string, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, name+".html.tmpl", view); err != nil {
		return "", "", fmt.Errorf("email: render %s html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&textBuf, name+".txt.tmpl", view); err != nil {
		return "", "", fmt.Errorf("email: render %s text: %w", name, err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}
