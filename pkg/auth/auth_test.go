package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, err := m.GenerateToken("uid-1", "a@example.com")
	require.NoError(t, err)

	p, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.UID)
	assert.Equal(t, "a@example.com", p.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), p.ExpiresAt, 5*time.Second)
}

func TestJWTManagerRejectsForeignAndExpiredTokens(t *testing.T) {
	issuer := NewJWTManager("secret", time.Hour)
	token, err := issuer.GenerateToken("uid-1", "")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour).Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	late := NewJWTManager("secret", time.Hour)
	late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = late.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.GenerateToken("", "a@b.c")
	assert.Error(t, err)
}

type stubIDTokens struct {
	token *fbauth.Token
	err   error
}

func (s stubIDTokens) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifierMapsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	v := &FirebaseVerifier{client: stubIDTokens{token: &fbauth.Token{
		UID:     "fb-uid",
		Expires: exp,
		Claims:  map[string]interface{}{"email": "fb@example.com"},
	}}}

	p, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "fb-uid", p.UID)
	assert.Equal(t, "fb@example.com", p.Email)
	assert.Equal(t, exp, p.ExpiresAt.Unix())
}

func TestFirebaseVerifierWithoutEmailClaim(t *testing.T) {
	v := &FirebaseVerifier{client: stubIDTokens{token: &fbauth.Token{UID: "anon", Claims: map[string]interface{}{}}}}
	p, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Empty(t, p.Email)
}

func TestFirebaseVerifierWrapsFailure(t *testing.T) {
	v := &FirebaseVerifier{client: stubIDTokens{err: errors.New("token expired")}}
	_, err := v.Verify(context.Background(), "id-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newRevocationList(t *testing.T) (*RevocationList, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRevocationList(rdb), mr
}

func TestRevocationListExpiresWithToken(t *testing.T) {
	l, mr := newRevocationList(t)
	ctx := context.Background()

	require.NoError(t, l.Revoke(ctx, "tok", time.Now().Add(10*time.Minute)))
	revoked, err := l.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	other, err := l.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, other)

	mr.FastForward(11 * time.Minute)
	revoked, err = l.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationListSkipsExpiredTokens(t *testing.T) {
	l, mr := newRevocationList(t)
	require.NoError(t, l.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.Empty(t, mr.Keys())
}

func TestRevocationListDoesNotStoreRawToken(t *testing.T) {
	l, mr := newRevocationList(t)
	require.NoError(t, l.Revoke(context.Background(), "secret-token", time.Time{}))
	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "secret-token")
	assert.Equal(t, 24*time.Hour, mr.TTL(keys[0]))
}
