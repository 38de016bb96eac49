package email

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/pkg/interfaces"
)

var (
	ErrSendFailed   = errors.New("email: send failed")
	ErrNoRecipients = errors.New("email: at least one recipient is required")
	ErrNoSender     = errors.New("email: from address is required")
)

// Message is a provider-neutral outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Headers map[string]string
}

// SendResult carries the provider's message id.
type SendResult struct {
	ID string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) (SendResult, error)
}

func (m Message) validate() error {
	if strings.TrimSpace(m.From) == "" {
		return ErrNoSender
	}
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	logger interfaces.Logger
}

func NewResendSender(apiKey string, logger interfaces.Logger) *ResendSender {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		logger: logger,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (SendResult, error) {
	if err := msg.validate(); err != nil {
		return SendResult{}, err
	}

	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	if len(msg.Headers) > 0 {
		req.Headers = maps.Clone(msg.Headers)
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		s.logger.Error("email.resend.failed", "subject", msg.Subject, "recipients", len(msg.To), "error", err)
		return SendResult{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	s.logger.Debug("email.resend.sent", "id", sent.Id, "subject", msg.Subject)
	return SendResult{ID: sent.Id}, nil
}

// LogSender logs messages instead of delivering them. It backs local
// development when no provider key is configured.
type LogSender struct {
	logger interfaces.Logger
}

func NewLogSender(logger interfaces.Logger) *LogSender {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) (SendResult, error) {
	if err := msg.validate(); err != nil {
		return SendResult{}, err
	}
	s.logger.Info("email.log.sent", "to", strings.Join(msg.To, ","), "subject", msg.Subject)
	return SendResult{ID: "logged"}, nil
}
