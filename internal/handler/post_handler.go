package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// PostHandler handles community post endpoints
type PostHandler struct {
	posts PostUseCases
}

func NewPostHandler(posts PostUseCases) *PostHandler {
	return &PostHandler{posts: posts}
}

// List godoc
// @Summary List posts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category name"
// @Param search query string false "Matches title or content"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} model.PostListResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var q model.PostListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.posts.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} model.PostResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{postId} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "postId")
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.PostResponse{Post: post})
}

// Create godoc
// @Summary Create a post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreatePostRequest true "Post"
// @Success 201 {object} model.PostResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.PostResponse{Message: "Post created", Post: post})
}

// Update godoc
// @Summary Update my post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param body body model.UpdatePostRequest true "Changed fields"
// @Success 200 {object} model.PostResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{postId} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "postId")
	if !ok {
		return
	}
	var req model.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Update(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.PostResponse{Message: "Post updated", Post: post})
}

// Delete godoc
// @Summary Delete my post
// @Tags Posts
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{postId} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "postId")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
