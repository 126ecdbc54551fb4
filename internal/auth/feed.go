package auth

import (
	"crypto/subtle"
	"errors"
)

// Errors returned by ValidateFeedToken.
var (
	ErrFeedDisabled     = errors.New("kitchen feed disabled")
	ErrInvalidFeedToken = errors.New("invalid feed token")
)

// ValidateFeedToken checks a kitchen display's token against the configured
// one. An empty configured token disables the feed.
func ValidateFeedToken(expected, got string) error {
	if expected == "" {
		return ErrFeedDisabled
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
		return ErrInvalidFeedToken
	}
	return nil
}
