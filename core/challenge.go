package core

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Shift returns the code point offset applied at zero-based position i
func Shift(i int) rune {
	return rune(i%4) + 1
}

// Solve transforms a challenge into the response the server expects.
//
// Every code point is shifted by Shift(index), the result is encoded as UTF-8
// and then as standard padded base64. Shifting past the last Unicode scalar
// value, or into the surrogate range, returns ErrCodePointOutOfRange.
func Solve(challenge string) (string, error) {
	var b strings.Builder
	b.Grow(len(challenge) + 4)

	i := 0
	for _, r := range challenge {
		shifted := r + Shift(i)
		if !utf8.ValidRune(shifted) {
			return "", ErrCodePointOutOfRange
		}
		b.WriteRune(shifted)
		i++
	}

	return base64.StdEncoding.EncodeToString([]byte(b.String())), nil
}
