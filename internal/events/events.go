// Package events fans listing changes out to live subscribers.
package events

import (
	"context"
	"sync"

	"github.com/Prince260602/internhubs/internal/models"
)

// Channel is the Redis pub/sub channel carrying listing events.
const Channel = "listings:events"

type Publisher interface {
	Publish(ctx context.Context, ev models.ListingEvent) error
}

type Subscriber interface {
	// Subscribe delivers events until ctx is done, then closes the channel.
	Subscribe(ctx context.Context) (<-chan models.ListingEvent, error)
}

type Bus interface {
	Publisher
	Subscriber
}

// MemoryBus is an in-process bus for single-instance deployments and tests.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[chan models.ListingEvent]struct{}
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: map[chan models.ListingEvent]struct{}{}}
}

func (b *MemoryBus) Publish(_ context.Context, ev models.ListingEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default: // slow subscriber, drop
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context) (<-chan models.ListingEvent, error) {
	ch := make(chan models.ListingEvent, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}
