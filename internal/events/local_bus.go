package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const localBusBuffer = 64

// LocalBus is an in-process Publisher and Subscriber used when Redis is
// not configured. A subscriber that falls behind by more than its buffer
// loses events rather than blocking publishers.
type LocalBus struct {
	log  *zap.Logger
	mu   sync.RWMutex
	subs map[string][]chan Event
}

func NewLocalBus(log *zap.Logger) *LocalBus {
	return &LocalBus{log: log, subs: make(map[string][]chan Event)}
}

func (b *LocalBus) Publish(_ context.Context, stream string, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[stream] {
		select {
		case ch <- event:
		default:
			b.log.Warn("subscriber is slow, dropping event",
				zap.String("stream", stream),
				zap.String("type", event.Type),
			)
		}
	}
	return nil
}

func (b *LocalBus) Subscribe(ctx context.Context, stream string, handler func(Event)) error {
	ch := make(chan Event, localBusBuffer)

	b.mu.Lock()
	b.subs[stream] = append(b.subs[stream], ch)
	b.mu.Unlock()

	go func() {
		defer b.unsubscribe(stream, ch)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-ch:
				handler(event)
			}
		}
	}()
	return nil
}

func (b *LocalBus) unsubscribe(stream string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[stream]
	for i, c := range subs {
		if c == ch {
			b.subs[stream] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[stream]) == 0 {
		delete(b.subs, stream)
	}
}

func (b *LocalBus) subscriberCount(stream string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[stream])
}
