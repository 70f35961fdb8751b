package repository

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"gorm.io/gorm"
)

// ChatRoomRepository handles database operations for ChatRoom
type ChatRoomRepository struct {
	db *gorm.DB
}

func NewChatRoomRepository(db *gorm.DB) *ChatRoomRepository {
	return &ChatRoomRepository{db: db}
}

// FindByPair looks the pair up in both orderings, so rows stored before the
// canonical ordering was enforced are still found.
func (r *ChatRoomRepository) FindByPair(ctx context.Context, p model.Pair) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			p.User1, p.User2, p.User2, p.User1).
		Order("id ASC").
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a room; losing a race on the pair yields ErrDuplicate
func (r *ChatRoomRepository) Create(ctx context.Context, room *model.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// ListForUser returns rooms email takes part in, most recently active first
func (r *ChatRoomRepository) ListForUser(ctx context.Context, email string) ([]model.ChatRoom, error) {
	rooms := []model.ChatRoom{}
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", email, email).
		Order("COALESCE(last_message_sent_at, created_at) DESC").
		Order("id DESC").
		Find(&rooms).Error
	return rooms, err
}
