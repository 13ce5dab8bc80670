package tokenizer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand/v2"
	"sync"

	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/ports"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// accessTokenBytes is rendered as 32 hex characters
const accessTokenBytes = 16

// RandomTokenizer implements the Tokenizer interface with random letters for
// challenges and crypto/rand bytes for access tokens
type RandomTokenizer struct {
	length int

	mu  sync.Mutex
	rng *mrand.Rand // nil means the global source
}

// Option configures a RandomTokenizer
type Option func(*RandomTokenizer)

// WithSource makes challenge generation use src, mainly for reproducible tests
func WithSource(src mrand.Source) Option {
	return func(t *RandomTokenizer) {
		t.rng = mrand.New(src)
	}
}

// NewRandomTokenizer creates a tokenizer issuing challenges of the given length
func NewRandomTokenizer(length int, opts ...Option) ports.Tokenizer {
	if length <= 0 {
		length = core.DefaultChallengeLength
	}

	t := &RandomTokenizer{length: length}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewChallenge returns upper and lower case letters from a non-cryptographic source
func (t *RandomTokenizer) NewChallenge() string {
	buf := make([]byte, t.length)

	if t.rng == nil {
		for i := range buf {
			buf[i] = letters[mrand.IntN(len(letters))]
		}
		return string(buf)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range buf {
		buf[i] = letters[t.rng.IntN(len(letters))]
	}
	return string(buf)
}

// NewAccessToken returns 16 random bytes as lowercase hex
func (t *RandomTokenizer) NewAccessToken() (string, error) {
	b := make([]byte, accessTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
