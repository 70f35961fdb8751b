package model

import "time"

// FcmToken is a push registration for one of a user's devices. UserID is
// the user's email; (UserID, Token) is unique.
type FcmToken struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"userId" gorm:"size:255;not null;uniqueIndex:idx_fcm_tokens_user_token"`
	Token      string    `json:"token" gorm:"size:255;not null;uniqueIndex:idx_fcm_tokens_user_token"`
	DeviceType *string   `json:"deviceType" gorm:"size:50"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
