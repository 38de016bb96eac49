package subscribers

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrAudienceInvalid = errors.New("subscribers: audience is invalid")
	ErrEmailRequired   = errors.New("subscribers: email is required")
	ErrTokenInvalid    = errors.New("subscribers: unsubscribe token is invalid")
)

// Audience names a mailing list.
type Audience string

const (
	AudienceInsights Audience = "insights"
	AudienceEvents   Audience = "events"
	// AudienceAll targets every list an address belongs to.
	AudienceAll Audience = "all"
)

// Audiences lists the concrete mailing lists.
var Audiences = []Audience{AudienceInsights, AudienceEvents}

// ParseAudience accepts a list name; blank means AudienceAll.
func ParseAudience(value string) (Audience, error) {
	trimmed := Audience(strings.ToLower(strings.TrimSpace(value)))
	if trimmed == "" {
		return AudienceAll, nil
	}
	if trimmed == AudienceAll || slices.Contains(Audiences, trimmed) {
		return trimmed, nil
	}
	return "", fmt.Errorf("%w: %s", ErrAudienceInvalid, value)
}

type Status string

const (
	StatusNone         Status = "none"
	StatusSubscribed   Status = "subscribed"
	StatusUnsubscribed Status = "unsubscribed"
)

// Subscriber is one address on one mailing list.
type Subscriber struct {
	bun.BaseModel `bun:"table:subscribers,alias:s"`

	ID             uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Audience       Audience   `bun:"audience,notnull" json:"audience"`
	Email          string     `bun:"email,notnull" json:"email"`
	Name           string     `bun:"name" json:"name,omitempty"`
	Interests      []string   `bun:"interests,type:jsonb" json:"interests,omitempty"`
	EventIDs       []string   `bun:"event_ids,type:jsonb" json:"event_ids,omitempty"`
	Status         Status     `bun:"status,notnull" json:"status"`
	SubscribedAt   time.Time  `bun:"subscribed_at,nullzero" json:"subscribed_at"`
	UnsubscribedAt *time.Time `bun:"unsubscribed_at,nullzero" json:"unsubscribed_at,omitempty"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero" json:"updated_at"`
}

func (s *Subscriber) clone() *Subscriber {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Interests = slices.Clone(s.Interests)
	copied.EventIDs = slices.Clone(s.EventIDs)
	if s.UnsubscribedAt != nil {
		at := *s.UnsubscribedAt
		copied.UnsubscribedAt = &at
	}
	return &copied
}

// NotFoundError reports a subscriber lookup that matched nothing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
