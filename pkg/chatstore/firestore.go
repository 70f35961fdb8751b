// Package chatstore creates the Firestore documents that clients use for
// live chat. Messages themselves never pass through this service.
package chatstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Room is the data a chat document is bootstrapped with
type Room struct {
	ChatID       string
	Participants []string
	CreatedBy    string
	CreatedAt    time.Time
}

// documentCreator is the part of *firestore.Client we use
type documentCreator interface {
	create(ctx context.Context, collection, id string, data map[string]any) error
}

type firestoreCreator struct {
	client *firestore.Client
}

func (f firestoreCreator) create(ctx context.Context, collection, id string, data map[string]any) error {
	_, err := f.client.Collection(collection).Doc(id).Create(ctx, data)
	return err
}

// FirestoreBootstrapper creates chats/{chatId} documents
type FirestoreBootstrapper struct {
	docs       documentCreator
	collection string
	closer     func() error
}

// NewFirestoreBootstrapper opens a Firestore client from the Firebase app
func NewFirestoreBootstrapper(ctx context.Context, app *firebase.App, collection string) (*FirestoreBootstrapper, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}
	return &FirestoreBootstrapper{
		docs:       firestoreCreator{client: client},
		collection: collection,
		closer:     client.Close,
	}, nil
}

// EnsureRoom creates the chat document if it does not exist yet. An
// existing document is left untouched.
func (b *FirestoreBootstrapper) EnsureRoom(ctx context.Context, room Room) error {
	data := map[string]any{
		"participants": room.Participants,
		"createdBy":    room.CreatedBy,
		"createdAt":    room.CreatedAt,
		"lastMessage":  "",
	}
	err := b.docs.create(ctx, b.collection, room.ChatID, data)
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// Close releases the Firestore client
func (b *FirestoreBootstrapper) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// Nop is used when Firestore is not configured
type Nop struct{}

func (Nop) EnsureRoom(context.Context, Room) error { return nil }
