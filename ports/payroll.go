package ports

import (
	"context"

	"github.com/paypulse/showcase/core"
)

// PayrollSource provides the payload released to authorized callers
type PayrollSource interface {
	Report(ctx context.Context) (*core.PayrollReport, error)
}
