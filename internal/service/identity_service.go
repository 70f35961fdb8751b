package service

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

// IdentityService maps auth principals to internal users
type IdentityService struct {
	users UserStore
}

func NewIdentityService(users UserStore) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve returns the user for p, creating it on first sight. A principal
// without a UID is unauthenticated.
func (s *IdentityService) Resolve(ctx context.Context, p auth.Principal) (*model.User, error) {
	if p.UID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}

	user, err := s.users.FindByFirebaseUID(ctx, p.UID)
	if err == nil {
		return user, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	email := p.Email
	if email == "" {
		email = model.PlaceholderEmail(p.UID)
	}
	user = &model.User{FirebaseUID: p.UID, Email: email}
	err = s.users.Create(ctx, user)
	if err == nil {
		return user, nil
	}
	if !repository.IsDuplicate(err) {
		return nil, err
	}

	// A concurrent request provisioned the same principal first.
	existing, findErr := s.users.FindByFirebaseUID(ctx, p.UID)
	if findErr == nil {
		return existing, nil
	}
	if repository.IsNotFound(findErr) {
		return nil, apperror.Conflict("email is already linked to another account").WithCause(err)
	}
	return nil, findErr
}

// Current returns the existing user for p without provisioning one.
func (s *IdentityService) Current(ctx context.Context, p auth.Principal) (*model.User, error) {
	if p.UID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}
	user, err := s.users.FindByFirebaseUID(ctx, p.UID)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound("user not found")
	}
	return user, err
}

// ByEmail returns the user with email or a not-found error naming role.
func (s *IdentityService) ByEmail(ctx context.Context, email, role string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound(role + " not found")
	}
	return user, err
}
