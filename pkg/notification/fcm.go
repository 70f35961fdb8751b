package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// Message is a push notification payload
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// TokenStore looks up and prunes a user's registered device tokens
type TokenStore interface {
	TokensFor(ctx context.Context, email string) ([]string, error)
	DeleteTokens(ctx context.Context, tokens []string) error
}

// multicaster is the part of *messaging.Client we use
type multicaster interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMSender delivers push notifications to every device of a user
type FCMSender struct {
	client multicaster
	tokens TokenStore
	log    *zap.Logger
	wg     sync.WaitGroup
}

// NewFCMSender creates a sender from an initialised Firebase app
func NewFCMSender(ctx context.Context, app *firebase.App, tokens TokenStore, log *zap.Logger) (*FCMSender, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}
	return &FCMSender{client: client, tokens: tokens, log: log}, nil
}

// Notify sends msg in the background. Failures are logged, never returned;
// the write that triggered the notification has already succeeded.
func (s *FCMSender) Notify(ctx context.Context, recipientEmail string, msg Message) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()
		if err := s.Send(sendCtx, recipientEmail, msg); err != nil {
			s.log.Warn("push notification failed", zap.String("recipient", recipientEmail), zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight notifications finish
func (s *FCMSender) Wait() {
	s.wg.Wait()
}

// Send delivers msg to all tokens of recipientEmail and prunes tokens FCM
// reports as unregistered
func (s *FCMSender) Send(ctx context.Context, recipientEmail string, msg Message) error {
	tokens, err := s.tokens.TokensFor(ctx, recipientEmail)
	if err != nil {
		return fmt.Errorf("loading tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	br, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast message: %w", err)
	}

	var stale []string
	for idx, resp := range br.Responses {
		if resp.Success {
			continue
		}
		if messaging.IsUnregistered(resp.Error) {
			stale = append(stale, tokens[idx])
			continue
		}
		s.log.Debug("FCM delivery failed", zap.String("recipient", recipientEmail), zap.Error(resp.Error))
	}

	if len(stale) > 0 {
		if err := s.tokens.DeleteTokens(ctx, stale); err != nil {
			s.log.Warn("failed to prune FCM tokens", zap.Int("count", len(stale)), zap.Error(err))
		}
	}
	return nil
}

// Nop discards notifications. Used when Firebase is not configured.
type Nop struct {
	Log *zap.Logger
}

func (n Nop) Notify(_ context.Context, recipientEmail string, msg Message) {
	if n.Log != nil {
		n.Log.Debug("push disabled, dropping notification", zap.String("recipient", recipientEmail), zap.String("title", msg.Title))
	}
}
