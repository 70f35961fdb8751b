package repository

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// ProfileRepository handles database operations for UserProfile
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByEmail returns the profile of the user with email
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByEmails returns profiles keyed by user email; missing users are absent
func (r *ProfileRepository) FindByEmails(ctx context.Context, emails []string) (map[string]*model.UserProfile, error) {
	out := make(map[string]*model.UserProfile, len(emails))
	if len(emails) == 0 {
		return out, nil
	}
	var profiles []model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", emails).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		out[profiles[i].UserID] = &profiles[i]
	}
	return out, nil
}

// Create inserts a profile
func (r *ProfileRepository) Create(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Save writes every column of an existing profile
func (r *ProfileRepository) Save(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// NicknameTaken reports whether nickname belongs to someone other than email
func (r *ProfileRepository) NicknameTaken(ctx context.Context, nickname, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("nickname = ? AND user_id <> ?", nickname, email).
		Count(&count).Error
	return count > 0, err
}
