package model

import (
	"time"
)

// User is the internal identity record for an external auth principal.
// Email is the business key referenced by owner columns elsewhere.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirebaseUID string    `json:"firebaseUid" gorm:"column:firebase_uid;size:255;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaceholderEmail is used when the principal carries no email claim.
func PlaceholderEmail(uid string) string {
	return "user_" + uid + "@temp"
}

// UserProfile is one-to-one with User through UserID (the user's email).
type UserProfile struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	UserID                string     `json:"userId" gorm:"column:user_id;size:255;uniqueIndex;not null"`
	Nickname              string     `json:"nickname" gorm:"size:255;uniqueIndex;not null"`
	Bio                   string     `json:"bio" gorm:"type:text;not null;default:''"`
	ProfileImageURL       string     `json:"profileImageUrl" gorm:"column:profile_image_url;size:512;not null;default:''"`
	Gender                string     `json:"gender" gorm:"size:50;not null;default:''"`
	AgeRange              string     `json:"ageRange" gorm:"size:50;not null;default:''"`
	TravelStyles          StringList `json:"travelStyles" gorm:"type:jsonb;not null;default:'[]'"`
	Interests             StringList `json:"interests" gorm:"type:jsonb;not null;default:'[]'"`
	PreferredDestinations StringList `json:"preferredDestinations" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// NewUserProfile returns an empty profile for email with the given nickname.
func NewUserProfile(email, nickname string) *UserProfile {
	return &UserProfile{
		UserID:                email,
		Nickname:              nickname,
		TravelStyles:          StringList{},
		Interests:             StringList{},
		PreferredDestinations: StringList{},
	}
}
