package subscribers

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-site/internal/identity"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/pkg/interfaces"
)

type SubscribeInput struct {
	Audience  Audience
	Email     string
	Name      string
	Interests []string
	EventID   string
}

type UnsubscribeInput struct {
	Audience Audience
	Email    string
	Token    string
}

// Service records list membership.
type Service struct {
	repo        Repository
	signer      Signer
	now         func() time.Time
	logger      interfaces.Logger
	broadcaster *changeBroadcaster
}

type ServiceOption func(*Service)

func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSigner(signer Signer) ServiceOption {
	return func(s *Service) {
		s.signer = signer
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:        repo,
		now:         time.Now,
		logger:      logging.SubscribersLogger(nil),
		broadcaster: newChangeBroadcaster(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Subscribe adds or reactivates email on a list, merging interests and event
// registrations into the existing record.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*Subscriber, error) {
	email := identity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if in.Audience == AudienceAll || !slices.Contains(Audiences, in.Audience) {
		return nil, ErrAudienceInvalid
	}

	now := s.now().UTC()
	id := identity.SubscriberUUID(string(in.Audience), email)

	existing, err := s.repo.Get(ctx, id)
	switch {
	case err == nil:
		existing.Status = StatusSubscribed
		existing.UnsubscribedAt = nil
		existing.UpdatedAt = now
		if name := strings.TrimSpace(in.Name); name != "" {
			existing.Name = name
		}
		existing.Interests = mergeValues(existing.Interests, in.Interests...)
		existing.EventIDs = mergeValues(existing.EventIDs, in.EventID)
		updated, err := s.repo.Update(ctx, existing)
		if err != nil {
			return nil, err
		}
		s.changed(ChangeSubscribed, updated)
		return updated, nil
	case IsNotFound(err):
	default:
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Subscriber{
		ID:           id,
		Audience:     in.Audience,
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Interests:    mergeValues(nil, in.Interests...),
		EventIDs:     mergeValues(nil, in.EventID),
		Status:       StatusSubscribed,
		SubscribedAt: now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.changed(ChangeSubscribed, created)
	return created, nil
}

// Unsubscribe marks email unsubscribed from one list, or from every list for
// AudienceAll. Unknown addresses succeed with no records changed.
func (s *Service) Unsubscribe(ctx context.Context, in UnsubscribeInput) ([]*Subscriber, error) {
	email := identity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	audience := in.Audience
	if audience == "" {
		audience = AudienceAll
	}
	if audience != AudienceAll && !slices.Contains(Audiences, audience) {
		return nil, ErrAudienceInvalid
	}
	if !s.signer.Verify(audience, email, in.Token) {
		s.logger.Warn("subscribers.unsubscribe.token_rejected", "audience", audience)
		return nil, ErrTokenInvalid
	}

	var targets []*Subscriber
	if audience == AudienceAll {
		records, err := s.repo.ListByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		targets = records
	} else {
		record, err := s.repo.Get(ctx, identity.SubscriberUUID(string(audience), email))
		switch {
		case err == nil:
			targets = append(targets, record)
		case IsNotFound(err):
		default:
			return nil, err
		}
	}

	now := s.now().UTC()
	changed := make([]*Subscriber, 0, len(targets))
	for _, record := range targets {
		if record.Status == StatusUnsubscribed {
			continue
		}
		record.Status = StatusUnsubscribed
		record.UnsubscribedAt = &now
		record.UpdatedAt = now
		updated, err := s.repo.Update(ctx, record)
		if err != nil {
			return changed, err
		}
		s.changed(ChangeUnsubscribed, updated)
		changed = append(changed, updated)
	}
	return changed, nil
}

// Status reports the membership of email on audience.
func (s *Service) Status(ctx context.Context, audience Audience, email string) (Status, error) {
	record, err := s.repo.Get(ctx, identity.SubscriberUUID(string(audience), email))
	if err != nil {
		if IsNotFound(err) {
			return StatusNone, nil
		}
		return "", err
	}
	return record.Status, nil
}

// List returns the members of audience, active or not.
func (s *Service) List(ctx context.Context, audience Audience) ([]*Subscriber, error) {
	return s.repo.ListByAudience(ctx, audience)
}

// Token returns the unsubscribe token for email on audience, or "" when
// tokens are disabled.
func (s *Service) Token(audience Audience, email string) string {
	return s.signer.Token(audience, email)
}

// Watch delivers subscription changes until ctx is cancelled.
func (s *Service) Watch(ctx context.Context) <-chan ChangeEvent {
	return s.broadcaster.Watch(ctx)
}

func (s *Service) changed(kind ChangeType, record *Subscriber) {
	s.logger.Info("subscribers."+string(kind), "audience", record.Audience, "subscriber_id", record.ID.String())
	s.broadcaster.Broadcast(ChangeEvent{Type: kind, Subscriber: *record.clone()})
}

func mergeValues(existing []string, values ...string) []string {
	out := slices.Clone(existing)
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || slices.Contains(out, value) {
			continue
		}
		out = append(out, value)
	}
	return out
}
