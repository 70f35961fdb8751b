// Package auth verifies bearer credentials and yields the principal the
// domain layer works with. Verification itself is delegated: Firebase ID
// tokens in production, HS256 tokens signed with a shared secret locally.
package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidToken is returned for any credential that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the externally authenticated identity of a request.
type Principal struct {
	UID       string
	Email     string
	ExpiresAt time.Time
}

// Verifier checks a bearer token and returns its principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}
