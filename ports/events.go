package ports

import (
	"context"

	"github.com/paypulse/showcase/core"
)

// EventPublisher publishes login attempts for audit consumers
type EventPublisher interface {
	PublishLogin(ctx context.Context, event core.LoginEvent) error
}
