package repository

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// MessageRepository handles database operations for PrivateMessage
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, msg *model.PrivateMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
