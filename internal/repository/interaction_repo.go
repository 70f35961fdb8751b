package repository

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// InteractionRepository stores like and bookmark facts. Both tables share
// one shape; the kind selects the table.
type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) table(ctx context.Context, kind model.InteractionKind) *gorm.DB {
	return r.db.WithContext(ctx).Table(kind.Table())
}

// Find returns the fact for (userID, target) in kind's table
func (r *InteractionRepository) Find(ctx context.Context, kind model.InteractionKind, userID uint, t model.ContentTarget) (*model.InteractionFact, error) {
	var fact model.InteractionFact
	err := whereContent(r.table(ctx, kind), t).
		Where("user_id = ?", userID).
		First(&fact).Error
	if err != nil {
		return nil, err
	}
	return &fact, nil
}

// Create inserts a fact; a concurrent duplicate yields ErrDuplicate
func (r *InteractionRepository) Create(ctx context.Context, kind model.InteractionKind, fact *model.InteractionFact) error {
	return r.table(ctx, kind).Create(fact).Error
}

// Delete removes a fact by id
func (r *InteractionRepository) Delete(ctx context.Context, kind model.InteractionKind, id uint) error {
	return r.table(ctx, kind).Where("id = ?", id).Delete(&model.InteractionFact{}).Error
}

// Count returns how many facts of kind exist for target
func (r *InteractionRepository) Count(ctx context.Context, kind model.InteractionKind, t model.ContentTarget) (int64, error) {
	var n int64
	err := whereContent(r.table(ctx, kind), t).Count(&n).Error
	return n, err
}
