package service

import (
	"context"
	"fmt"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
)

// TargetResolver checks that a polymorphic target refers to an existing row
type TargetResolver struct {
	users       UserStore
	posts       PostStore
	itineraries ItineraryStore
	comments    CommentStore
}

func NewTargetResolver(users UserStore, posts PostStore, itineraries ItineraryStore, comments CommentStore) *TargetResolver {
	return &TargetResolver{users: users, posts: posts, itineraries: itineraries, comments: comments}
}

// Resolve returns a not-found error specific to the target's kind when it
// does not exist.
func (r *TargetResolver) Resolve(ctx context.Context, t model.Target) error {
	var (
		exists bool
		err    error
	)
	switch v := t.(type) {
	case model.UserTarget:
		exists, err = r.users.ExistsByEmail(ctx, v.Email)
	case model.PostTarget:
		exists, err = r.posts.Exists(ctx, v.ID)
	case model.ItineraryTarget:
		exists, err = r.itineraries.Exists(ctx, v.ID)
	case model.CommentTarget:
		exists, err = r.comments.Exists(ctx, v.ID)
	default:
		return fmt.Errorf("service: unhandled target %T", t)
	}
	if err != nil {
		return err
	}
	if !exists {
		return notFoundFor(t)
	}
	return nil
}

// AuthorOf returns the owner email of a content target.
func (r *TargetResolver) AuthorOf(ctx context.Context, t model.ContentTarget) (string, error) {
	switch v := t.(type) {
	case model.PostTarget:
		return r.posts.AuthorOf(ctx, v.ID)
	case model.ItineraryTarget:
		return r.itineraries.AuthorOf(ctx, v.ID)
	default:
		return "", fmt.Errorf("service: unhandled content target %T", t)
	}
}

func notFoundFor(t model.Target) error {
	switch t.(type) {
	case model.UserTarget:
		return apperror.NotFound("reported user not found")
	case model.PostTarget:
		return apperror.NotFound("post not found")
	case model.ItineraryTarget:
		return apperror.NotFound("itinerary not found")
	case model.CommentTarget:
		return apperror.NotFound("comment not found")
	default:
		return apperror.NotFound("target not found")
	}
}
