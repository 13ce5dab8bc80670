package paypulse

import (
	"context"

	"github.com/paypulse/showcase/core"
)

// Client represents the public interface for reading payroll data from a provider
type Client interface {
	// Authenticate solves the provider's challenge and keeps the access token
	Authenticate(ctx context.Context) error

	// Paystubs returns the paystubs of the authenticated employee
	Paystubs(ctx context.Context) ([]core.Paystub, error)
}
