package model

import "time"

// Comment attaches to exactly one post or itinerary and may reply to a
// top-level comment on the same content.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	AuthorID        string    `json:"authorId" gorm:"size:255;index;not null"`
	PostID          *uint     `json:"postId" gorm:"index"`
	ItineraryID     *uint     `json:"itineraryId" gorm:"index"`
	ParentCommentID *uint     `json:"parentCommentId" gorm:"index"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Replies         []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE"`
}

// SetTarget fills exactly one of PostID/ItineraryID.
func (c *Comment) SetTarget(t ContentTarget) {
	c.PostID, c.ItineraryID = contentSlots(t)
}

// Target returns the content the comment is attached to.
func (c *Comment) Target() ContentTarget {
	return contentFromSlots(c.PostID, c.ItineraryID)
}

func (c *Comment) OwnedBy(email string) bool {
	return c.AuthorID == email
}
