package repository

import (
	"context"
	"fmt"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// ReportRepository handles database operations for Report
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ExistsFor reports whether reporter already reported target
func (r *ReportRepository) ExistsFor(ctx context.Context, reporter string, t model.Target) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("reporter_user_id = ?", reporter).
		Where(model.ReportTargetColumn(t.Kind())+" = ?", slotValue(t)).
		Count(&count).Error
	return count > 0, err
}

func slotValue(t model.Target) any {
	switch v := t.(type) {
	case model.UserTarget:
		return v.Email
	case model.PostTarget:
		return v.ID
	case model.ItineraryTarget:
		return v.ID
	case model.CommentTarget:
		return v.ID
	default:
		panic(fmt.Sprintf("repository: unhandled report target %T", t))
	}
}

// Create inserts a report; a concurrent duplicate yields ErrDuplicate
func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}
