package subscribers

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Repository persists subscribers keyed by their deterministic ID.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Subscriber, error)
	Create(ctx context.Context, record *Subscriber) (*Subscriber, error)
	Update(ctx context.Context, record *Subscriber) (*Subscriber, error)
	ListByEmail(ctx context.Context, email string) ([]*Subscriber, error)
	ListByAudience(ctx context.Context, audience Audience) ([]*Subscriber, error)
}

// MemoryRepository keeps subscribers in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Subscriber
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]*Subscriber)}
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "subscriber", Key: id.String()}
	}
	return record.clone(), nil
}

func (r *MemoryRepository) Create(_ context.Context, record *Subscriber) (*Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records[record.ID] = record.clone()
	return record.clone(), nil
}

func (r *MemoryRepository) Update(_ context.Context, record *Subscriber) (*Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "subscriber", Key: record.ID.String()}
	}
	r.records[record.ID] = record.clone()
	return record.clone(), nil
}

func (r *MemoryRepository) ListByEmail(_ context.Context, email string) ([]*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.filter(func(s *Subscriber) bool { return s.Email == email }), nil
}

func (r *MemoryRepository) ListByAudience(_ context.Context, audience Audience) ([]*Subscriber, error) {
	return r.filter(func(s *Subscriber) bool { return s.Audience == audience }), nil
}

func (r *MemoryRepository) filter(keep func(*Subscriber) bool) []*Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Subscriber, 0)
	for _, record := range r.records {
		if keep(record) {
			out = append(out, record.clone())
		}
	}
	slices.SortFunc(out, func(a, b *Subscriber) int {
		if c := strings.Compare(a.Email, b.Email); c != 0 {
			return c
		}
		return strings.Compare(string(a.Audience), string(b.Audience))
	})
	return out
}
