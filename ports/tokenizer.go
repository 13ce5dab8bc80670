package ports

// Tokenizer produces challenges and access tokens
type Tokenizer interface {
	// NewChallenge returns a fresh challenge string
	NewChallenge() string

	// NewAccessToken returns an opaque, unguessable access token
	NewAccessToken() (string, error)
}
