package subscribers

import (
	"context"
	"sync"
)

// ChangeType enumerates subscription changes.
type ChangeType string

const (
	ChangeSubscribed   ChangeType = "subscribed"
	ChangeUnsubscribed ChangeType = "unsubscribed"
)

// ChangeEvent reports a subscription mutation to watchers.
type ChangeEvent struct {
	Type       ChangeType
	Subscriber Subscriber
}

type changeBroadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan ChangeEvent
	nextID   uint64
}

func newChangeBroadcaster() *changeBroadcaster {
	return &changeBroadcaster{
		watchers: make(map[uint64]chan ChangeEvent),
	}
}

func (b *changeBroadcaster) Watch(ctx context.Context) <-chan ChangeEvent {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch
	}
	ch := make(chan ChangeEvent, 8)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Broadcast never blocks; a watcher with a full buffer misses the event.
func (b *changeBroadcaster) Broadcast(evt ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
