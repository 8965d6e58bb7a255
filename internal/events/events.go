package events

import "context"

// Streams
const (
	StreamCampaign = "events:campaign"
)

// Event types
const (
	EventCampaignCreated = "campaign_created"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

// Subscriber delivers events to handler from a background goroutine until
// ctx is cancelled. Subscribe itself does not block.
type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
