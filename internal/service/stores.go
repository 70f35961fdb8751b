package service

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/pkg/chatstore"
	"github.com/quocanhngo/travelmate/pkg/notification"
)

// The store interfaces below are satisfied by the repository package. Lookups
// return repository.ErrNotFound for missing rows and inserts return
// repository.ErrDuplicate on unique violations.

type UserStore interface {
	FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
}

type ProfileStore interface {
	FindByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	FindByEmails(ctx context.Context, emails []string) (map[string]*model.UserProfile, error)
	Create(ctx context.Context, p *model.UserProfile) error
	Save(ctx context.Context, p *model.UserProfile) error
	NicknameTaken(ctx context.Context, nickname, email string) (bool, error)
}

type PostStore interface {
	List(ctx context.Context, f repository.PostFilter) ([]model.Post, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	AuthorOf(ctx context.Context, id uint) (string, error)
	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
	FindCategoryByName(ctx context.Context, name string) (*model.PostCategory, error)
	EnsureCategories(ctx context.Context, cats []model.PostCategory) error
}

type ItineraryStore interface {
	List(ctx context.Context, f repository.ItineraryFilter) ([]model.Itinerary, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Itinerary, error)
	FindHeader(ctx context.Context, id uint) (*model.Itinerary, error)
	Exists(ctx context.Context, id uint) (bool, error)
	AuthorOf(ctx context.Context, id uint) (string, error)
	Create(ctx context.Context, it *model.Itinerary) error
	Update(ctx context.Context, it *model.Itinerary, days *[]model.ItineraryDay) error
	Delete(ctx context.Context, id uint) error
}

type CommentStore interface {
	ListTopLevel(ctx context.Context, t model.ContentTarget) ([]model.Comment, error)
	FindByID(ctx context.Context, id uint) (*model.Comment, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, c *model.Comment) error
	UpdateContent(ctx context.Context, c *model.Comment, content string) error
	Delete(ctx context.Context, id uint) error
}

type InteractionStore interface {
	Find(ctx context.Context, kind model.InteractionKind, userID uint, t model.ContentTarget) (*model.InteractionFact, error)
	Create(ctx context.Context, kind model.InteractionKind, fact *model.InteractionFact) error
	Delete(ctx context.Context, kind model.InteractionKind, id uint) error
	Count(ctx context.Context, kind model.InteractionKind, t model.ContentTarget) (int64, error)
}

type ChatRoomStore interface {
	FindByPair(ctx context.Context, p model.Pair) (*model.ChatRoom, error)
	Create(ctx context.Context, room *model.ChatRoom) error
	ListForUser(ctx context.Context, email string) ([]model.ChatRoom, error)
}

type ReportStore interface {
	ExistsFor(ctx context.Context, reporter string, t model.Target) (bool, error)
	Create(ctx context.Context, report *model.Report) error
}

type FcmTokenStore interface {
	Upsert(ctx context.Context, token *model.FcmToken) error
	Delete(ctx context.Context, email, token string) (int64, error)
}

type MessageStore interface {
	Create(ctx context.Context, msg *model.PrivateMessage) error
}

// Notifier delivers push notifications without blocking the caller.
type Notifier interface {
	Notify(ctx context.Context, recipientEmail string, msg notification.Message)
}

// RoomBootstrapper creates the external chat document for a room.
type RoomBootstrapper interface {
	EnsureRoom(ctx context.Context, room chatstore.Room) error
}
