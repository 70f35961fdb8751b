package auth

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// idTokenVerifier is the part of *fbauth.Client we use.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier builds a verifier from an initialised Firebase app.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token signature and expiry with Firebase.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	p := &Principal{
		UID:       decoded.UID,
		ExpiresAt: time.Unix(decoded.Expires, 0),
	}
	if email, ok := decoded.Claims["email"].(string); ok {
		p.Email = email
	}
	return p, nil
}
