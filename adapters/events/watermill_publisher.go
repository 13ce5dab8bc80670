package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/ports"
)

// DefaultLoginTopic is the topic login attempts are published to
const DefaultLoginTopic = "paypulse.login"

// LoginEvent is the wire form of a login attempt
type LoginEvent struct {
	ID         string    `json:"id"`
	Outcome    string    `json:"outcome"`
	Challenge  string    `json:"challenge"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher. An empty topic
// falls back to DefaultLoginTopic.
func NewWatermillPublisher(publisher message.Publisher, topic string) ports.EventPublisher {
	if topic == "" {
		topic = DefaultLoginTopic
	}

	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
	}
}

// PublishLogin publishes a login attempt
func (p *WatermillPublisher) PublishLogin(ctx context.Context, event core.LoginEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	payload, err := json.Marshal(LoginEvent{
		ID:         event.ID,
		Outcome:    string(event.Outcome),
		Challenge:  event.Challenge,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
