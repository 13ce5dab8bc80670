package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/metrics"
	"github.com/paypulse/showcase/ports"
)

// AuthService issues challenges, validates responses and owns the set of
// valid access tokens. Challenges are not remembered: the caller echoes the
// challenge back with its response.
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.TokenStore
	eventPub  ports.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger

	now func() time.Time
}

// NewAuthService creates a new authentication service. eventPub may be nil.
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.TokenStore,
	eventPub ports.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AuthService {
	if m == nil {
		m = metrics.Nop()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		tokenizer: tokenizer,
		store:     store,
		eventPub:  eventPub,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// IssueChallenge returns a fresh random challenge
func (s *AuthService) IssueChallenge() string {
	s.metrics.ChallengesIssued.Inc()
	return s.tokenizer.NewChallenge()
}

// Validate reports whether response is the transform of challenge.
// Malformed base64 is treated as a mismatch.
func (s *AuthService) Validate(challenge, response string) bool {
	expected, err := core.Solve(challenge)
	if err != nil {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(response)
	if err != nil {
		return false
	}

	// expected is produced by the same encoder, so it always decodes
	want, _ := base64.StdEncoding.DecodeString(expected)

	return bytes.Equal(decoded, want)
}

// Login validates the response and, on success, issues a new access token
func (s *AuthService) Login(ctx context.Context, challenge, response string) (string, error) {
	if challenge == "" || response == "" {
		s.recordLogin(ctx, core.LoginMalformed, challenge)
		return "", core.ErrMalformedRequest
	}

	if !s.Validate(challenge, response) {
		s.recordLogin(ctx, core.LoginRejected, challenge)
		return "", core.ErrInvalidCredentials
	}

	token, err := s.tokenizer.NewAccessToken()
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}

	if err := s.store.Add(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store access token: %w", err)
	}

	s.recordLogin(ctx, core.LoginSucceeded, challenge)
	return token, nil
}

// Authorize reports whether token was issued by a successful login
func (s *AuthService) Authorize(ctx context.Context, token string) (bool, error) {
	if token == "" {
		s.metrics.Authorizations.WithLabelValues("denied").Inc()
		return false, nil
	}

	ok, err := s.store.Contains(ctx, token)
	if err != nil {
		s.metrics.Authorizations.WithLabelValues("error").Inc()
		return false, fmt.Errorf("failed to look up access token: %w", err)
	}

	if ok {
		s.metrics.Authorizations.WithLabelValues("granted").Inc()
	} else {
		s.metrics.Authorizations.WithLabelValues("denied").Inc()
	}
	return ok, nil
}

func (s *AuthService) recordLogin(ctx context.Context, outcome core.LoginOutcome, challenge string) {
	s.metrics.LoginAttempts.WithLabelValues(string(outcome)).Inc()
	s.logger.InfoContext(ctx, "login attempt", "outcome", outcome)

	if s.eventPub == nil {
		return
	}

	event := core.LoginEvent{
		ID:         uuid.New().String(),
		Outcome:    outcome,
		Challenge:  challenge,
		OccurredAt: s.now(),
	}

	// The token is already stored, a lost audit event does not fail the login
	if err := s.eventPub.PublishLogin(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish login event", "error", err)
	}
}
