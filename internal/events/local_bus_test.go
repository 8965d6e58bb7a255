package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestLocalBus_DeliversToStreamSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewLocalBus(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{}, 2)
	handler := func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		done <- struct{}{}
	}

	require.NoError(t, bus.Subscribe(ctx, StreamCampaign, handler))
	require.NoError(t, bus.Subscribe(ctx, StreamCampaign, handler))
	require.NoError(t, bus.Subscribe(ctx, "events:other", func(Event) {
		t.Error("unexpected delivery on other stream")
	}))

	event := Event{Type: EventCampaignCreated, Payload: map[string]any{"campaign_id": "c1"}}
	require.NoError(t, bus.Publish(ctx, StreamCampaign, event))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, EventCampaignCreated, got[0].Type)
	assert.Equal(t, "c1", got[1].Payload["campaign_id"])

	cancel()
	assert.Eventually(t, func() bool {
		return bus.subscriberCount(StreamCampaign) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestLocalBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewLocalBus(zaptest.NewLogger(t))
	assert.NoError(t, bus.Publish(context.Background(), StreamCampaign, Event{Type: EventCampaignCreated}))
}

func TestLocalBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewLocalBus(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})
	require.NoError(t, bus.Subscribe(ctx, StreamCampaign, func(Event) { <-release }))

	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < localBusBuffer*2; i++ {
			_ = bus.Publish(ctx, StreamCampaign, Event{Type: EventCampaignCreated})
		}
	}()

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	cancel()
	close(release)
}
