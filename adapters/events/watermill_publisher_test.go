package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paypulse/showcase/core"
)

func TestWatermillPublisher_PublishLogin(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, DefaultLoginTopic)
	require.NoError(t, err)

	pub := NewWatermillPublisher(pubSub, "")
	occurred := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	err = pub.PublishLogin(ctx, core.LoginEvent{
		ID:         "evt-1",
		Outcome:    core.LoginSucceeded,
		Challenge:  "TESTCHALLENGE",
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, "evt-1", msg.UUID)

		var got LoginEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "success", got.Outcome)
		assert.Equal(t, "TESTCHALLENGE", got.Challenge)
		assert.True(t, occurred.Equal(got.OccurredAt))
	case <-ctx.Done():
		t.Fatal("timed out waiting for login event")
	}
}

func TestWatermillPublisher_AssignsID(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, "custom.topic")
	require.NoError(t, err)

	pub := NewWatermillPublisher(pubSub, "custom.topic")
	require.NoError(t, pub.PublishLogin(ctx, core.LoginEvent{Outcome: core.LoginRejected}))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.NotEmpty(t, msg.UUID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for login event")
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(topic string, messages ...*message.Message) error {
	return errors.New("broker down")
}

func (failingPublisher) Close() error { return nil }

func TestWatermillPublisher_PublishError(t *testing.T) {
	pub := NewWatermillPublisher(failingPublisher{}, "")

	err := pub.PublishLogin(context.Background(), core.LoginEvent{Outcome: core.LoginRejected})
	assert.ErrorContains(t, err, "broker down")
}
