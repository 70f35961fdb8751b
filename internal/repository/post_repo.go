package repository

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing
type PostFilter struct {
	CategoryID *uint
	Search     string
	Limit      int
	Offset     int
}

// PostRepository handles database operations for Post and PostCategory
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// List returns one page of posts, newest first, and the total match count
func (r *PostRepository) List(ctx context.Context, f PostFilter) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []model.Post{}
	err := q.Preload("Category").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&posts).Error
	return posts, total, err
}

// FindByID finds a post by id with its category
func (r *PostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Exists reports whether a post with id exists
func (r *PostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AuthorOf returns the author email of a post
func (r *PostRepository) AuthorOf(ctx context.Context, id uint) (string, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Select("id", "author_id").Where("id = ?", id).First(&post).Error
	return post.AuthorID, err
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("Category").Create(post).Error
}

func (r *PostRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("Category").Save(post).Error
}

// Delete removes a post; comments, likes, bookmarks and reports cascade
func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// FindCategoryByName finds a category by its exact name
func (r *PostRepository) FindCategoryByName(ctx context.Context, name string) (*model.PostCategory, error) {
	var cat model.PostCategory
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// EnsureCategories inserts any of cats that do not exist yet
func (r *PostRepository) EnsureCategories(ctx context.Context, cats []model.PostCategory) error {
	if len(cats) == 0 {
		return nil
	}
	rows := make([]model.PostCategory, len(cats))
	copy(rows, cats)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
}
