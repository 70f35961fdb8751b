package service

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

// FcmTokenService registers device tokens for push notifications
type FcmTokenService struct {
	identity *IdentityService
	tokens   FcmTokenStore
}

func NewFcmTokenService(identity *IdentityService, tokens FcmTokenStore) *FcmTokenService {
	return &FcmTokenService{identity: identity, tokens: tokens}
}

// Register stores the token for the caller. Registering a known token
// again only updates its device type.
func (s *FcmTokenService) Register(ctx context.Context, p auth.Principal, req model.RegisterFCMTokenRequest) (*model.FcmToken, error) {
	if req.Token == "" {
		return nil, apperror.Validation("token is required")
	}
	if err := validation.MaxLength("token", req.Token, validation.MaxFCMToken); err != nil {
		return nil, err
	}
	if err := validation.MaxLengthPtr("deviceType", req.DeviceType, validation.MaxDeviceType); err != nil {
		return nil, err
	}

	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}

	token := &model.FcmToken{UserID: user.Email, Token: req.Token, DeviceType: req.DeviceType}
	if err := s.tokens.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Delete removes one of the caller's tokens
func (s *FcmTokenService) Delete(ctx context.Context, p auth.Principal, token string) error {
	if token == "" {
		return apperror.Validation("token is required")
	}
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return err
	}
	n, err := s.tokens.Delete(ctx, user.Email, token)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("FCM token not found for this user")
	}
	return nil
}
