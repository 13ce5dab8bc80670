package ports

import "context"

// TokenStore holds the set of access tokens that are currently valid
type TokenStore interface {
	Add(ctx context.Context, token string) error
	Contains(ctx context.Context, token string) (bool, error)
}
