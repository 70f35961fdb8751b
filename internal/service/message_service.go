package service

import (
	"context"
	"strings"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/quocanhngo/travelmate/pkg/notification"
)

// MessageService sends private messages
type MessageService struct {
	identity *IdentityService
	messages MessageStore
	profiles ProfileStore
	notifier Notifier
}

func NewMessageService(identity *IdentityService, messages MessageStore, profiles ProfileStore, notifier Notifier) *MessageService {
	return &MessageService{identity: identity, messages: messages, profiles: profiles, notifier: notifier}
}

// Send stores the message and pushes it to the receiver
func (s *MessageService) Send(ctx context.Context, p auth.Principal, req model.SendMessageRequest) (*model.PrivateMessage, error) {
	receiverEmail := strings.TrimSpace(req.ReceiverID)
	if receiverEmail == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("receiverId and content are required")
	}
	if err := validation.MaxLength("content", req.Content, validation.MaxMessageContent); err != nil {
		return nil, err
	}

	sender, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	receiver, err := s.identity.ByEmail(ctx, receiverEmail, "receiver")
	if err != nil {
		return nil, err
	}

	msg := &model.PrivateMessage{SenderID: sender.Email, ReceiverID: receiver.Email, Content: req.Content}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	nickname := sender.Email
	if prof, err := s.profiles.FindByEmail(ctx, sender.Email); err == nil && prof.Nickname != "" {
		nickname = prof.Nickname
	}
	s.notifier.Notify(ctx, receiver.Email, notification.Message{
		Title: "New message from " + nickname,
		Body:  req.Content,
		Data: map[string]string{
			"type":           "private_message",
			"senderId":       sender.FirebaseUID,
			"senderNickname": nickname,
		},
	})
	return msg, nil
}
