package repository

import (
	"context"
	"fmt"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// CommentRepository handles database operations for Comment
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func whereContent(db *gorm.DB, t model.ContentTarget) *gorm.DB {
	switch v := t.(type) {
	case model.PostTarget:
		return db.Where("post_id = ?", v.ID)
	case model.ItineraryTarget:
		return db.Where("itinerary_id = ?", v.ID)
	default:
		panic(fmt.Sprintf("repository: unhandled content target %T", t))
	}
}

// ListTopLevel returns top-level comments on t with their direct replies,
// oldest first
func (r *CommentRepository) ListTopLevel(ctx context.Context, t model.ContentTarget) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := whereContent(r.db.WithContext(ctx), t).
		Where("parent_comment_id IS NULL").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC, comments.id ASC")
		}).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Omit("Replies").Create(c).Error
}

// UpdateContent replaces the text of a comment
func (r *CommentRepository) UpdateContent(ctx context.Context, c *model.Comment, content string) error {
	return r.db.WithContext(ctx).Model(c).Update("content", content).Error
}

// Delete removes a comment and, by cascade, its replies
func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
