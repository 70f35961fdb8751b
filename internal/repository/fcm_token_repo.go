package repository

import (
	"context"
	"time"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FcmTokenRepository handles push token registrations
type FcmTokenRepository struct {
	db *gorm.DB
}

func NewFcmTokenRepository(db *gorm.DB) *FcmTokenRepository {
	return &FcmTokenRepository{db: db}
}

// Upsert inserts the (user, token) pair or, when it exists, updates its
// device type. token is filled with the stored row.
func (r *FcmTokenRepository) Upsert(ctx context.Context, token *model.FcmToken) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{
			"device_type": token.DeviceType,
			"updated_at":  time.Now(),
		}),
	}).Create(token).Error
	if err != nil {
		return err
	}
	return db.Where("user_id = ? AND token = ?", token.UserID, token.Token).First(token).Error
}

// Delete removes one of a user's tokens and returns the number of rows removed
func (r *FcmTokenRepository) Delete(ctx context.Context, email, token string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND token = ?", email, token).Delete(&model.FcmToken{})
	return res.RowsAffected, res.Error
}

// TokensFor returns the registered tokens of a user
func (r *FcmTokenRepository) TokensFor(ctx context.Context, email string) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&model.FcmToken{}).
		Where("user_id = ?", email).
		Pluck("token", &tokens).Error
	return tokens, err
}

// DeleteTokens removes tokens the push provider reported as unregistered
func (r *FcmTokenRepository) DeleteTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("token IN ?", tokens).Delete(&model.FcmToken{}).Error
}
