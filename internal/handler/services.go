package handler

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/service"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/quocanhngo/travelmate/pkg/storage"
)

// The use-case interfaces below are implemented by the service package.

type AuthUseCases interface {
	Me(ctx context.Context, p auth.Principal) (*model.User, error)
	Logout(ctx context.Context, p auth.Principal, token string) error
}

type ProfileUseCases interface {
	Get(ctx context.Context, p auth.Principal, email string) (*model.UserProfile, bool, error)
	Update(ctx context.Context, p auth.Principal, email string, req model.UpdateProfileRequest) (*model.UserProfile, bool, error)
	UpdateImage(ctx context.Context, p auth.Principal, email, url string) (string, error)
}

type MessageUseCases interface {
	Send(ctx context.Context, p auth.Principal, req model.SendMessageRequest) (*model.PrivateMessage, error)
}

type FcmTokenUseCases interface {
	Register(ctx context.Context, p auth.Principal, req model.RegisterFCMTokenRequest) (*model.FcmToken, error)
	Delete(ctx context.Context, p auth.Principal, token string) error
}

type ChatUseCases interface {
	RequestRoom(ctx context.Context, p auth.Principal, partnerEmail string) (*service.RoomResult, error)
	ListRooms(ctx context.Context, p auth.Principal) ([]model.ChatRoomSummary, error)
}

type PostUseCases interface {
	List(ctx context.Context, q model.PostListQuery) (*model.PostListResponse, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, p auth.Principal, req model.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, p auth.Principal, id uint, req model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, p auth.Principal, id uint) error
}

type ItineraryUseCases interface {
	List(ctx context.Context, q model.ListQuery) (*model.ItineraryListResponse, error)
	Get(ctx context.Context, id uint) (*model.Itinerary, error)
	Create(ctx context.Context, p auth.Principal, req model.CreateItineraryRequest) (*model.Itinerary, error)
	Update(ctx context.Context, p auth.Principal, id uint, req model.UpdateItineraryRequest) (*model.Itinerary, error)
	Delete(ctx context.Context, p auth.Principal, id uint) error
}

type CommentUseCases interface {
	List(ctx context.Context, q model.CommentListQuery) ([]model.Comment, error)
	Add(ctx context.Context, p auth.Principal, req model.CreateCommentRequest) (*model.Comment, error)
	Update(ctx context.Context, p auth.Principal, id uint, content string) (*model.Comment, error)
	Delete(ctx context.Context, p auth.Principal, id uint) error
}

type InteractionUseCases interface {
	Toggle(ctx context.Context, p auth.Principal, kind model.InteractionKind, contentType string, contentID uint) (model.ToggleResult, error)
	Status(ctx context.Context, p auth.Principal, contentType string, contentID uint) (*model.InteractionStatus, error)
}

type ReportUseCases interface {
	Submit(ctx context.Context, p auth.Principal, req model.ReportRequest) (*model.Report, error)
}

// Uploader stores uploaded files
type Uploader interface {
	Upload(ctx context.Context, obj storage.Object) (*storage.UploadResult, error)
}
