package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	comments CommentUseCases
}

func NewCommentHandler(comments CommentUseCases) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List godoc
// @Summary List comments on a post or itinerary
// @Description Exactly one of postId and itineraryId. Top-level comments with their replies.
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param postId query int false "Post ID"
// @Param itineraryId query int false "Itinerary ID"
// @Success 200 {object} model.CommentListResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	var q model.CommentListQuery
	if !bindQuery(c, &q) {
		return
	}

	comments, err := h.comments.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	c.JSON(http.StatusOK, model.CommentListResponse{Comments: comments})
}

// Create godoc
// @Summary Comment on a post or itinerary
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateCommentRequest true "Comment"
// @Success 201 {object} model.CommentResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req model.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.CommentResponse{Message: "Comment added", Comment: comment})
}

// Update godoc
// @Summary Edit my comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Param body body model.UpdateCommentRequest true "New content"
// @Success 200 {object} model.CommentResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /comments/{commentId} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	var req model.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), middleware.GetPrincipal(c), id, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CommentResponse{Message: "Comment updated", Comment: comment})
}

// Delete godoc
// @Summary Delete my comment and its replies
// @Tags Comments
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
