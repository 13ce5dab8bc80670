package core

import "time"

// TokenTypeBearer is reported alongside every issued access token
const TokenTypeBearer = "bearer"

// DefaultChallengeLength is the number of letters in an issued challenge
const DefaultChallengeLength = 12

// LoginOutcome describes how a login attempt ended
type LoginOutcome string

const (
	LoginSucceeded LoginOutcome = "success"
	LoginRejected  LoginOutcome = "rejected"
	LoginMalformed LoginOutcome = "malformed"
)

// LoginEvent records a login attempt for audit consumers
type LoginEvent struct {
	ID         string       // Unique identifier for the event
	Outcome    LoginOutcome // How the attempt ended
	Challenge  string       // Challenge echoed back by the client
	OccurredAt time.Time    // When the attempt was processed
}
