package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "blacklist:"

// RevocationList records logged-out tokens in Redis until they expire.
type RevocationList struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRevocationList(rdb *redis.Client) *RevocationList {
	return &RevocationList{rdb: rdb, now: time.Now}
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}

// Revoke blacklists token until expiresAt. Already expired tokens are
// ignored; a zero expiresAt keeps the entry for a day.
func (l *RevocationList) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := 24 * time.Hour
	if !expiresAt.IsZero() {
		ttl = expiresAt.Sub(l.now())
		if ttl <= 0 {
			return nil
		}
	}
	return l.rdb.Set(ctx, revokedKey(token), 1, ttl).Err()
}

// IsRevoked reports whether token was revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
