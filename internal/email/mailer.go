package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// Mailing lists a recipient can join.
const (
	ListInsights = "insights"
	ListEvents   = "events"
)

type ContactSubmission struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Service string
	Message string
}

type Welcome struct {
	Name  string
	Email string
}

type EventRegistration struct {
	Name       string
	Email      string
	EventID    string
	EventTitle string
	EventDate  string
}

type InsightsSubscription struct {
	Name      string
	Email     string
	Interests []string
}

type Unsubscription struct {
	Email string
	List  string
}

// UnsubscribeLinker returns the one-click unsubscribe URL for a recipient, or
// an empty string when none can be built.
type UnsubscribeLinker func(list, email string) string

// Mailer renders and sends the site's transactional messages.
type Mailer struct {
	sender      Sender
	renderer    *Renderer
	from        string
	replyTo     string
	notifyTo    []string
	siteName    string
	siteURL     string
	unsubscribe UnsubscribeLinker
	logger      interfaces.Logger
}

type MailerOption func(*Mailer)

func WithUnsubscribeLinker(linker UnsubscribeLinker) MailerOption {
	return func(m *Mailer) {
		m.unsubscribe = linker
	}
}

func WithLogger(logger interfaces.Logger) MailerOption {
	return func(m *Mailer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewMailer(sender Sender, cfg runtimeconfig.Config, opts ...MailerOption) (*Mailer, error) {
	if sender == nil {
		return nil, fmt.Errorf("email: sender is required")
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	m := &Mailer{
		sender:   sender,
		renderer: renderer,
		from:     cfg.Email.From,
		replyTo:  cfg.Email.ReplyTo,
		notifyTo: append([]string(nil), cfg.Email.NotifyTo...),
		siteName: cfg.SiteName,
		siteURL:  strings.TrimRight(cfg.SiteURL, "/"),
		logger:   logging.EmailLogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// NewSenderFromConfig picks Resend when email is enabled and a key is present,
// and a logging sender otherwise.
func NewSenderFromConfig(cfg runtimeconfig.EmailConfig, logger interfaces.Logger) Sender {
	if cfg.Enabled && strings.TrimSpace(cfg.APIKey) != "" {
		return NewResendSender(cfg.APIKey, logger)
	}
	return NewLogSender(logger)
}

// SendContactNotification tells the team about a contact form submission.
func (m *Mailer) SendContactNotification(ctx context.Context, sub ContactSubmission) (SendResult, error) {
	return m.send(ctx, envelope{
		template: TemplateContactNotification,
		to:       m.notifyTo,
		replyTo:  sub.Email,
		subject:  fmt.Sprintf("New inquiry from %s", sub.Name),
		data:     sub,
	})
}

// SendContactConfirmation acknowledges a contact form submission.
func (m *Mailer) SendContactConfirmation(ctx context.Context, sub ContactSubmission) (SendResult, error) {
	return m.send(ctx, envelope{
		template: TemplateContactConfirmation,
		to:       []string{sub.Email},
		subject:  fmt.Sprintf("Thanks for reaching out to %s", m.siteName),
		data:     sub,
	})
}

func (m *Mailer) SendWelcome(ctx context.Context, w Welcome) (SendResult, error) {
	return m.send(ctx, envelope{
		template: TemplateWelcome,
		to:       []string{w.Email},
		subject:  fmt.Sprintf("Welcome to %s", m.siteName),
		data:     w,
	})
}

func (m *Mailer) SendEventNotification(ctx context.Context, reg EventRegistration) (SendResult, error) {
	title := reg.EventTitle
	if title == "" {
		title = reg.EventID
	}
	return m.send(ctx, envelope{
		template: TemplateEventNotification,
		to:       m.notifyTo,
		replyTo:  reg.Email,
		subject:  fmt.Sprintf("New registration: %s", title),
		data:     reg,
	})
}

func (m *Mailer) SendEventConfirmation(ctx context.Context, reg EventRegistration) (SendResult, error) {
	subject := "Your registration is confirmed"
	if reg.EventTitle != "" {
		subject = fmt.Sprintf("You're registered for %s", reg.EventTitle)
	}
	return m.send(ctx, envelope{
		template: TemplateEventConfirmation,
		to:       []string{reg.Email},
		subject:  subject,
		list:     ListEvents,
		data:     reg,
	})
}

func (m *Mailer) SendInsightsNotification(ctx context.Context, sub InsightsSubscription) (SendResult, error) {
	return m.send(ctx, envelope{
		template: TemplateInsightsNotification,
		to:       m.notifyTo,
		replyTo:  sub.Email,
		subject:  fmt.Sprintf("New insights subscriber: %s", sub.Email),
		data:     sub,
	})
}

func (m *Mailer) SendInsightsWelcome(ctx context.Context, sub InsightsSubscription) (SendResult, error) {
	return m.send(ctx, envelope{
		template: TemplateInsightsWelcome,
		to:       []string{sub.Email},
		subject:  fmt.Sprintf("Welcome to %s Insights", m.siteName),
		list:     ListInsights,
		data:     sub,
	})
}

func (m *Mailer) SendUnsubscribeConfirmation(ctx context.Context, u Unsubscription) (SendResult, error) {
	return m.send(ctx, envelope{
		template: TemplateUnsubscribeConfirmation,
		to:       []string{u.Email},
		subject:  "You have been unsubscribed",
		data:     u,
	})
}

type envelope struct {
	template string
	to       []string
	replyTo  string
	subject  string
	list     string
	data     any
}

func (m *Mailer) send(ctx context.Context, env envelope) (SendResult, error) {
	view := View{
		SiteName: m.siteName,
		SiteURL:  m.siteURL,
		Data:     env.data,
	}
	var headers map[string]string
	if env.list != "" && m.unsubscribe != nil && len(env.to) == 1 {
		if link := m.unsubscribe(env.list, env.to[0]); link != "" {
			view.UnsubscribeURL = link
			headers = ListUnsubscribeHeaders(link)
		}
	}

	html, text, err := m.renderer.Render(env.template, view)
	if err != nil {
		m.logger.Error("email.render.failed", "template", env.template, "error", err)
		return SendResult{}, err
	}

	replyTo := env.replyTo
	if replyTo == "" {
		replyTo = m.replyTo
	}

	result, err := m.sender.Send(ctx, Message{
		From:    m.from,
		To:      env.to,
		ReplyTo: replyTo,
		Subject: env.subject,
		HTML:    html,
		Text:    text,
		Headers: headers,
	})
	if err != nil {
		m.logger.Warn("email.send.failed", "template", env.template, "error", err)
		return SendResult{}, err
	}
	m.logger.Info("email.send.ok", "template", env.template, "id", result.ID)
	return result, nil
}

// ListUnsubscribeHeaders returns the RFC 8058 one-click unsubscribe headers.
func ListUnsubscribeHeaders(link string) map[string]string {
	return map[string]string{
		"List-Unsubscribe":      "<" + link + ">",
		"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
	}
}
