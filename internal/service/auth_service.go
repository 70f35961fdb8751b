package service

import (
	"context"
	"time"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

// TokenRevoker blacklists bearer tokens until they expire
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

// AuthService handles session-level operations on top of the external
// identity provider
type AuthService struct {
	identity *IdentityService
	revoker  TokenRevoker
}

func NewAuthService(identity *IdentityService, revoker TokenRevoker) *AuthService {
	return &AuthService{identity: identity, revoker: revoker}
}

// Me returns the caller, provisioning the user on first sight
func (s *AuthService) Me(ctx context.Context, p auth.Principal) (*model.User, error) {
	return s.identity.Resolve(ctx, p)
}

// Logout revokes the bearer token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, p auth.Principal, token string) error {
	if token == "" {
		return apperror.Unauthorized("authentication required")
	}
	return s.revoker.Revoke(ctx, token, p.ExpiresAt)
}
