package service

import (
	"context"
	"strings"
	"time"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/quocanhngo/travelmate/pkg/chatstore"
	"go.uber.org/zap"
)

const bootstrapTimeout = 5 * time.Second

// ChatService pairs users into chat rooms
type ChatService struct {
	identity *IdentityService
	rooms    ChatRoomStore
	profiles ProfileStore
	store    RoomBootstrapper
	log      *zap.Logger
}

func NewChatService(identity *IdentityService, rooms ChatRoomStore, profiles ProfileStore, store RoomBootstrapper, log *zap.Logger) *ChatService {
	return &ChatService{identity: identity, rooms: rooms, profiles: profiles, store: store, log: log}
}

// RoomResult is the outcome of a room request
type RoomResult struct {
	Room            *model.ChatRoom
	Created         bool
	IsRequestedByMe bool
}

// RequestRoom returns the room shared by the caller and partnerEmail,
// creating it with canonical ordering when none exists. Requests from
// either side resolve to the same room.
func (s *ChatService) RequestRoom(ctx context.Context, p auth.Principal, partnerEmail string) (*RoomResult, error) {
	partnerEmail = strings.TrimSpace(partnerEmail)
	if partnerEmail == "" {
		return nil, apperror.Validation("partnerId (email) is required")
	}

	me, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	partner, err := s.identity.ByEmail(ctx, partnerEmail, "chat partner")
	if err != nil {
		return nil, err
	}

	pair := model.NewPair(me.Email, partner.Email)
	if pair.Self() {
		return nil, apperror.Validation("cannot start a chat with yourself")
	}

	// Every path ensures the chat document exists; EnsureRoom is idempotent.
	room, err := s.rooms.FindByPair(ctx, pair)
	if err == nil {
		s.bootstrap(ctx, room)
		return &RoomResult{Room: room, IsRequestedByMe: room.RequestedBy(me.Email)}, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	room = pair.Room(me.Email)
	if err := s.rooms.Create(ctx, room); err != nil {
		if !repository.IsDuplicate(err) {
			return nil, err
		}
		// Lost the race; the unique index kept the other writer's row.
		existing, findErr := s.rooms.FindByPair(ctx, pair)
		if findErr != nil {
			return nil, findErr
		}
		s.bootstrap(ctx, existing)
		return &RoomResult{Room: existing, IsRequestedByMe: existing.RequestedBy(me.Email)}, nil
	}

	s.bootstrap(ctx, room)
	return &RoomResult{Room: room, Created: true, IsRequestedByMe: true}, nil
}

func (s *ChatService) bootstrap(ctx context.Context, room *model.ChatRoom) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bootstrapTimeout)
	defer cancel()

	createdAt := room.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdBy := ""
	if room.CreatedByUserID != nil {
		createdBy = *room.CreatedByUserID
	}
	err := s.store.EnsureRoom(ctx, chatstore.Room{
		ChatID:       room.FirestoreChatID,
		Participants: []string{room.User1ID, room.User2ID},
		CreatedBy:    createdBy,
		CreatedAt:    createdAt,
	})
	if err != nil {
		s.log.Warn("chat document bootstrap failed", zap.String("chat_id", room.FirestoreChatID), zap.Error(err))
	}
}

// ListRooms returns the caller's rooms, most recently active first
func (s *ChatService) ListRooms(ctx context.Context, p auth.Principal) ([]model.ChatRoomSummary, error) {
	me, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListForUser(ctx, me.Email)
	if err != nil {
		return nil, err
	}

	partners := make([]string, 0, len(rooms))
	for i := range rooms {
		partners = append(partners, rooms[i].Partner(me.Email))
	}
	profiles, err := s.profiles.FindByEmails(ctx, partners)
	if err != nil {
		return nil, err
	}

	out := make([]model.ChatRoomSummary, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		partner := r.Partner(me.Email)
		summary := model.ChatRoomSummary{
			ChatRoomID:      r.FirestoreChatID,
			PartnerEmail:    partner,
			PartnerNickname: partner,
			LastMessageAt:   r.LastActivity(),
			IsRequestedByMe: r.RequestedBy(me.Email),
		}
		if r.LastMessage != nil {
			summary.LastMessage = *r.LastMessage
		}
		if prof, ok := profiles[partner]; ok {
			summary.PartnerNickname = prof.Nickname
			if prof.ProfileImageURL != "" {
				url := prof.ProfileImageURL
				summary.PartnerProfileImageURL = &url
			}
		}
		out = append(out, summary)
	}
	return out, nil
}
