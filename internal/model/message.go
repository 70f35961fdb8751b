package model

import "time"

// PrivateMessage is a one-off note from one user to another. Live chat is
// held in Firestore; these are stored here and pushed to the receiver.
type PrivateMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   string    `json:"senderId" gorm:"size:255;index;not null"`
	ReceiverID string    `json:"receiverId" gorm:"size:255;index;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	IsRead     bool      `json:"isRead" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}
