package service

import (
	"context"

	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

// InteractionService flips like and bookmark facts.
//
// Toggle is a plain read-then-write. Two concurrent toggles by the same user
// on the same target may both read the same state; the last write decides
// the final state. The partial unique indexes keep that race from ever
// producing a duplicate row.
type InteractionService struct {
	identity *IdentityService
	targets  *TargetResolver
	facts    InteractionStore
}

func NewInteractionService(identity *IdentityService, targets *TargetResolver, facts InteractionStore) *InteractionService {
	return &InteractionService{identity: identity, targets: targets, facts: facts}
}

// Toggle adds the fact when absent and removes it when present
func (s *InteractionService) Toggle(ctx context.Context, p auth.Principal, kind model.InteractionKind, contentType string, contentID uint) (model.ToggleResult, error) {
	target, err := model.ParseContentTarget(contentType, contentID)
	if err != nil {
		return model.ToggleResult{}, err
	}
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return model.ToggleResult{}, err
	}
	if err := s.targets.Resolve(ctx, target); err != nil {
		return model.ToggleResult{}, err
	}

	existing, err := s.facts.Find(ctx, kind, user.ID, target)
	switch {
	case err == nil:
		if err := s.facts.Delete(ctx, kind, existing.ID); err != nil {
			return model.ToggleResult{}, err
		}
		return model.ToggleResult{Added: false}, nil
	case repository.IsNotFound(err):
		fact := model.NewInteractionFact(user.ID, target)
		if err := s.facts.Create(ctx, kind, fact); err != nil && !repository.IsDuplicate(err) {
			return model.ToggleResult{}, err
		}
		return model.ToggleResult{Added: true}, nil
	default:
		return model.ToggleResult{}, err
	}
}

// Status reports the caller's like/bookmark state and the like count
func (s *InteractionService) Status(ctx context.Context, p auth.Principal, contentType string, contentID uint) (*model.InteractionStatus, error) {
	target, err := model.ParseContentTarget(contentType, contentID)
	if err != nil {
		return nil, err
	}
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.targets.Resolve(ctx, target); err != nil {
		return nil, err
	}

	status := &model.InteractionStatus{}
	if status.IsLiked, err = s.has(ctx, model.InteractionLike, user.ID, target); err != nil {
		return nil, err
	}
	if status.IsBookmarked, err = s.has(ctx, model.InteractionBookmark, user.ID, target); err != nil {
		return nil, err
	}
	if status.LikeCount, err = s.facts.Count(ctx, model.InteractionLike, target); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *InteractionService) has(ctx context.Context, kind model.InteractionKind, userID uint, t model.ContentTarget) (bool, error) {
	_, err := s.facts.Find(ctx, kind, userID, t)
	if err == nil {
		return true, nil
	}
	if repository.IsNotFound(err) {
		return false, nil
	}
	return false, err
}
