package http

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-site/internal/email"
	"github.com/goliatone/go-site/internal/subscribers"
	sitevalidation "github.com/goliatone/go-site/internal/validation"
)

var emailRules = []validation.Rule{
	validation.Required.Error("email is required"),
	validation.Length(3, 254),
	is.EmailFormat.Error("must be a valid email address"),
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

func (r *contactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.Message = strings.TrimSpace(r.Message)
}

func (r contactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Company, validation.Length(0, 100)),
		validation.Field(&r.Phone, validation.Length(0, 40)),
		validation.Field(&r.Service, validation.Length(0, 100)),
		validation.Field(&r.Message, validation.Required.Error("message is required"), validation.Length(1, 5000)),
	)
}

func (r contactRequest) submission() email.ContactSubmission {
	return email.ContactSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Company: r.Company,
		Phone:   r.Phone,
		Service: r.Service,
		Message: r.Message,
	}
}

type welcomeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (r *welcomeRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r welcomeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Name, validation.Length(0, 100)),
	)
}

type eventRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	EventDate  string `json:"eventDate"`
}

func (r *eventRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.EventID = strings.TrimSpace(r.EventID)
	r.EventTitle = strings.TrimSpace(r.EventTitle)
	r.EventDate = strings.TrimSpace(r.EventDate)
}

func (r eventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
		validation.Field(&r.EventID, validation.Required.Error("eventId is required"), validation.Length(1, 120)),
		validation.Field(&r.EventTitle, validation.Length(0, 200)),
		validation.Field(&r.EventDate, validation.Length(0, 100)),
	)
}

func (r eventRequest) registration() email.EventRegistration {
	return email.EventRegistration{
		Name:       r.Name,
		Email:      r.Email,
		EventID:    r.EventID,
		EventTitle: r.EventTitle,
		EventDate:  r.EventDate,
	}
}

type insightsRequest struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
}

func (r *insightsRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	interests := r.Interests[:0]
	for _, interest := range r.Interests {
		if trimmed := strings.TrimSpace(interest); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}
	r.Interests = interests
}

func (r insightsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Name, validation.Length(0, 100)),
		validation.Field(&r.Interests, validation.Length(0, 20), validation.Each(validation.Length(1, 60))),
	)
}

func (r insightsRequest) subscription() email.InsightsSubscription {
	return email.InsightsSubscription{
		Name:      r.Name,
		Email:     r.Email,
		Interests: r.Interests,
	}
}

type unsubscribeRequest struct {
	Email string `json:"email"`
	List  string `json:"list"`
	Token string `json:"token"`
}

func (r *unsubscribeRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.List = strings.ToLower(strings.TrimSpace(r.List))
	r.Token = strings.TrimSpace(r.Token)
}

func (r unsubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.List, validation.In(
			string(subscribers.AudienceAll),
			string(subscribers.AudienceInsights),
			string(subscribers.AudienceEvents),
		).Error("must be insights, events or all")),
		validation.Field(&r.Token, validation.Length(0, 128)),
	)
}

// validateForm runs the form's ozzo rules and converts failures into a
// validation.Error.
func validateForm(form validation.Validatable) error {
	return sitevalidation.NewFieldError(form.Validate())
}
