package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestSubscriberUUIDIsStableAndCaseInsensitive(t *testing.T) {
	first := SubscriberUUID("insights", "Ada@Example.com ")
	second := SubscriberUUID("INSIGHTS", "ada@example.com")

	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected identical ids, got %s and %s", first, second)
	}
}

func TestSubscriberUUIDSeparatesAudiences(t *testing.T) {
	if SubscriberUUID("insights", "ada@example.com") == SubscriberUUID("events", "ada@example.com") {
		t.Fatal("expected audiences to produce different ids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("  "); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}
