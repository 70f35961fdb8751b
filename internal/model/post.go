package model

import "time"

// DefaultCategories are created at startup when missing.
var DefaultCategories = []PostCategory{
	{Name: "General", Description: "General discussion"},
	{Name: "Tips", Description: "Travel tips and advice"},
	{Name: "Stories", Description: "Travel stories and experiences"},
	{Name: "Questions", Description: "Questions for other travellers"},
	{Name: "Meetups", Description: "Find travel companions"},
}

type PostCategory struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

type Post struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	AuthorID   string        `json:"authorId" gorm:"size:255;index;not null"`
	CategoryID uint          `json:"categoryId" gorm:"index;not null"`
	Title      string        `json:"title" gorm:"size:255;not null"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	ImageURLs  StringList    `json:"imageUrls" gorm:"column:image_urls;type:jsonb;not null;default:'[]'"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Category   *PostCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// OwnedBy reports whether email authored the post.
func (p *Post) OwnedBy(email string) bool {
	return p.AuthorID == email
}
