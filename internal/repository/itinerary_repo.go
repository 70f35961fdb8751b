package repository

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// ItineraryFilter narrows an itinerary listing
type ItineraryFilter struct {
	Search string
	Limit  int
	Offset int
}

// ItineraryRepository handles database operations for the itinerary aggregate
type ItineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

func preloadDays(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Days", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("itinerary_days.day_number ASC, itinerary_days.id ASC")
		}).
		Preload("Days.Activities", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("itinerary_activities.id ASC")
		})
}

// List returns one page of itineraries with their days, newest first
func (r *ItineraryRepository) List(ctx context.Context, f ItineraryFilter) ([]model.Itinerary, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Itinerary{})
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []model.Itinerary{}
	err := preloadDays(q).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error
	return items, total, err
}

// FindByID loads an itinerary with days and activities in order
func (r *ItineraryRepository) FindByID(ctx context.Context, id uint) (*model.Itinerary, error) {
	var it model.Itinerary
	err := preloadDays(r.db.WithContext(ctx)).Where("id = ?", id).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// FindHeader loads an itinerary without children
func (r *ItineraryRepository) FindHeader(ctx context.Context, id uint) (*model.Itinerary, error) {
	var it model.Itinerary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItineraryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Itinerary{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AuthorOf returns the author email of an itinerary
func (r *ItineraryRepository) AuthorOf(ctx context.Context, id uint) (string, error) {
	var it model.Itinerary
	err := r.db.WithContext(ctx).Select("id", "author_id").Where("id = ?", id).First(&it).Error
	return it.AuthorID, err
}

// Create inserts the itinerary, its days and their activities in one
// transaction.
func (r *ItineraryRepository) Create(ctx context.Context, it *model.Itinerary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		days := it.Days
		it.Days = nil
		if err := tx.Create(it).Error; err != nil {
			return err
		}
		if err := insertDays(tx, it.ID, days); err != nil {
			return err
		}
		it.Days = days
		return nil
	})
}

// Update writes the scalar columns of it. When days is non-nil every
// existing day (and, by cascade, activity) is deleted and *days inserted in
// its place, in the same transaction. A nil days leaves children untouched.
func (r *ItineraryRepository) Update(ctx context.Context, it *model.Itinerary, days *[]model.ItineraryDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Itinerary{}).Where("id = ?", it.ID).Updates(map[string]any{
			"title":       it.Title,
			"description": it.Description,
			"start_date":  it.StartDate,
			"end_date":    it.EndDate,
			"image_urls":  it.ImageURLs,
			"map_data":    it.MapData,
			"updated_at":  gorm.Expr("NOW()"),
		}).Error
		if err != nil {
			return err
		}
		if days == nil {
			return nil
		}
		if err := tx.Where("itinerary_id = ?", it.ID).Delete(&model.ItineraryDay{}).Error; err != nil {
			return err
		}
		return insertDays(tx, it.ID, *days)
	})
}

// Delete removes an itinerary; days, activities and dependents cascade
func (r *ItineraryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Itinerary{}, id).Error
}

func insertDays(tx *gorm.DB, itineraryID uint, days []model.ItineraryDay) error {
	for i := range days {
		day := &days[i]
		day.ID = 0
		day.ItineraryID = itineraryID
		activities := day.Activities
		day.Activities = nil
		if err := tx.Create(day).Error; err != nil {
			return err
		}
		for j := range activities {
			activities[j].ID = 0
			activities[j].ItineraryDayID = day.ID
		}
		if len(activities) > 0 {
			if err := tx.Create(&activities).Error; err != nil {
				return err
			}
		}
		day.Activities = activities
	}
	return nil
}
