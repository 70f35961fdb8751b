package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/quocanhngo/travelmate/pkg/notification"
)

// CommentService handles comments on posts and itineraries
type CommentService struct {
	identity *IdentityService
	targets  *TargetResolver
	comments CommentStore
	profiles ProfileStore
	notifier Notifier
}

func NewCommentService(identity *IdentityService, targets *TargetResolver, comments CommentStore, profiles ProfileStore, notifier Notifier) *CommentService {
	return &CommentService{identity: identity, targets: targets, comments: comments, profiles: profiles, notifier: notifier}
}

// List returns top-level comments on the content with their replies
func (s *CommentService) List(ctx context.Context, q model.CommentListQuery) ([]model.Comment, error) {
	target, err := model.ContentTargetOf(q.PostID, q.ItineraryID)
	if err != nil {
		return nil, err
	}
	return s.comments.ListTopLevel(ctx, target)
}

// Add creates a comment and notifies the author of whatever it replies to
func (s *CommentService) Add(ctx context.Context, p auth.Principal, req model.CreateCommentRequest) (*model.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("content is required")
	}
	if err := validation.MaxLength("content", req.Content, validation.MaxCommentContent); err != nil {
		return nil, err
	}
	target, err := model.ContentTargetOf(req.PostID, req.ItineraryID)
	if err != nil {
		return nil, err
	}

	author, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.targets.Resolve(ctx, target); err != nil {
		return nil, err
	}

	var parent *model.Comment
	if req.ParentCommentID != nil && *req.ParentCommentID != 0 {
		parent, err = s.comments.FindByID(ctx, *req.ParentCommentID)
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("parent comment not found")
		}
		if err != nil {
			return nil, err
		}
		if parent.Target() != target {
			return nil, apperror.Validation("parent comment belongs to different content")
		}
	}

	comment := &model.Comment{AuthorID: author.Email, Content: req.Content}
	comment.SetTarget(target)
	if parent != nil {
		id := parent.ID
		comment.ParentCommentID = &id
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifyComment(ctx, author, comment, parent, target)
	return comment, nil
}

func (s *CommentService) notifyComment(ctx context.Context, author *model.User, c *model.Comment, parent *model.Comment, target model.ContentTarget) {
	commenter := author.Email
	var recipient, title string
	name := s.displayName(ctx, commenter)
	if parent != nil {
		recipient = parent.AuthorID
		title = "New reply from " + name
	} else {
		owner, err := s.targets.AuthorOf(ctx, target)
		if err != nil {
			return
		}
		recipient = owner
		title = fmt.Sprintf("New comment on your %s from %s", target.Kind(), name)
	}
	if recipient == "" || recipient == commenter {
		return
	}

	data := map[string]string{
		"type":        "new_comment",
		"commentId":   strconv.FormatUint(uint64(c.ID), 10),
		"postId":      "",
		"itineraryId": "",
		"senderId":    author.FirebaseUID,
	}
	switch t := target.(type) {
	case model.PostTarget:
		data["postId"] = t.Key()
	case model.ItineraryTarget:
		data["itineraryId"] = t.Key()
	}
	s.notifier.Notify(ctx, recipient, notification.Message{Title: title, Body: c.Content, Data: data})
}

// displayName returns the user's nickname, or the email if there is no profile
func (s *CommentService) displayName(ctx context.Context, email string) string {
	prof, err := s.profiles.FindByEmail(ctx, email)
	if err != nil || prof.Nickname == "" {
		return email
	}
	return prof.Nickname
}

// Update replaces the content of the caller's own comment
func (s *CommentService) Update(ctx context.Context, p auth.Principal, id uint, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation("content is required")
	}
	if err := validation.MaxLength("content", content, validation.MaxCommentContent); err != nil {
		return nil, err
	}
	comment, err := s.owned(ctx, p, id, "update")
	if err != nil {
		return nil, err
	}
	if err := s.comments.UpdateContent(ctx, comment, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

// Delete removes the caller's own comment together with its replies
func (s *CommentService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	if _, err := s.owned(ctx, p, id, "delete"); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}

func (s *CommentService) owned(ctx context.Context, p auth.Principal, id uint, verb string) (*model.Comment, error) {
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound("comment not found")
	}
	if err != nil {
		return nil, err
	}
	if !comment.OwnedBy(user.Email) {
		return nil, apperror.Forbidden("you can only " + verb + " your own comments")
	}
	return comment, nil
}
