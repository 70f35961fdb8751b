package service

import (
	"context"
	"strings"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

// PostService handles community posts
type PostService struct {
	identity *IdentityService
	posts    PostStore
}

func NewPostService(identity *IdentityService, posts PostStore) *PostService {
	return &PostService{identity: identity, posts: posts}
}

// EnsureDefaultCategories seeds the built-in categories; safe to repeat
func (s *PostService) EnsureDefaultCategories(ctx context.Context) error {
	return s.posts.EnsureCategories(ctx, model.DefaultCategories)
}

// List returns one page of posts, optionally filtered by category name
func (s *PostService) List(ctx context.Context, q model.PostListQuery) (*model.PostListResponse, error) {
	limit, offset := pageBounds(q.Limit, q.Offset)
	filter := repository.PostFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  limit,
		Offset: offset,
	}
	if name := strings.TrimSpace(q.Category); name != "" {
		cat, err := s.category(ctx, name)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &cat.ID
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.PostListResponse{Total: total, Limit: limit, Offset: offset, Posts: posts}, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound("post not found")
	}
	return post, err
}

func (s *PostService) Create(ctx context.Context, p auth.Principal, req model.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, apperror.Validation("title, content and category are required")
	}
	if err := validation.Lengths(
		validation.Field{Name: "title", Value: title, Max: validation.MaxPostTitle},
		validation.Field{Name: "content", Value: req.Content, Max: validation.MaxPostContent},
	); err != nil {
		return nil, err
	}

	author, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	cat, err := s.category(ctx, strings.TrimSpace(req.Category))
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID:   author.Email,
		CategoryID: cat.ID,
		Title:      title,
		Content:    req.Content,
		ImageURLs:  orEmpty(req.ImageURLs),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Category = cat
	return post, nil
}

// Update changes the caller's own post; absent fields keep their value
func (s *PostService) Update(ctx context.Context, p auth.Principal, id uint, req model.UpdatePostRequest) (*model.Post, error) {
	if err := validation.MaxLengthPtr("title", req.Title, validation.MaxPostTitle); err != nil {
		return nil, err
	}
	if err := validation.MaxLengthPtr("content", req.Content, validation.MaxPostContent); err != nil {
		return nil, err
	}

	post, err := s.owned(ctx, p, id, "update")
	if err != nil {
		return nil, err
	}

	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		cat, err := s.category(ctx, strings.TrimSpace(*req.Category))
		if err != nil {
			return nil, err
		}
		post.CategoryID = cat.ID
		post.Category = cat
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil && *req.Content != "" {
		post.Content = *req.Content
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the caller's own post
func (s *PostService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	if _, err := s.owned(ctx, p, id, "delete"); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

func (s *PostService) owned(ctx context.Context, p auth.Principal, id uint, verb string) (*model.Post, error) {
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(user.Email) {
		return nil, apperror.Forbidden("you can only " + verb + " your own posts")
	}
	return post, nil
}

func (s *PostService) category(ctx context.Context, name string) (*model.PostCategory, error) {
	cat, err := s.posts.FindCategoryByName(ctx, name)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound("category not found")
	}
	return cat, err
}
