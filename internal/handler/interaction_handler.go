package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// InteractionHandler handles likes, bookmarks and abuse reports
type InteractionHandler struct {
	interactions InteractionUseCases
	reports      ReportUseCases
}

func NewInteractionHandler(interactions InteractionUseCases, reports ReportUseCases) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, reports: reports}
}

// ToggleLike godoc
// @Summary Like or unlike content
// @Tags Interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.InteractionRequest true "contentType is post or itinerary"
// @Success 200 {object} model.LikeResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /interactions/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	res, ok := h.toggle(c, model.InteractionLike)
	if !ok {
		return
	}
	msg := "Unliked"
	if res.Added {
		msg = "Liked"
	}
	c.JSON(http.StatusOK, model.LikeResponse{Message: msg, IsLiked: res.Added, LikeCountChange: res.CountChange()})
}

// ToggleBookmark godoc
// @Summary Bookmark or unbookmark content
// @Tags Interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.InteractionRequest true "contentType is post or itinerary"
// @Success 200 {object} model.BookmarkResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /interactions/bookmark [post]
func (h *InteractionHandler) ToggleBookmark(c *gin.Context) {
	res, ok := h.toggle(c, model.InteractionBookmark)
	if !ok {
		return
	}
	msg := "Unbookmarked successfully"
	if res.Added {
		msg = "Bookmarked successfully"
	}
	c.JSON(http.StatusOK, model.BookmarkResponse{Message: msg, IsBookmarked: res.Added})
}

func (h *InteractionHandler) toggle(c *gin.Context, kind model.InteractionKind) (model.ToggleResult, bool) {
	var req model.InteractionRequest
	if !bindJSON(c, &req) {
		return model.ToggleResult{}, false
	}

	res, err := h.interactions.Toggle(c.Request.Context(), middleware.GetPrincipal(c), kind, req.ContentType, req.ContentID.Uint())
	if err != nil {
		fail(c, err)
		return model.ToggleResult{}, false
	}
	return res, true
}

// Status godoc
// @Summary My like and bookmark state for content
// @Tags Interactions
// @Produce json
// @Security BearerAuth
// @Param contentType query string true "post or itinerary"
// @Param contentId query int true "Content ID"
// @Success 200 {object} model.InteractionStatus
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /interactions/status [get]
func (h *InteractionHandler) Status(c *gin.Context) {
	var q model.InteractionStatusQuery
	if !bindQuery(c, &q) {
		return
	}

	status, err := h.interactions.Status(c.Request.Context(), middleware.GetPrincipal(c), q.ContentType, q.ContentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Report godoc
// @Summary Report a user, post, itinerary or comment
// @Description A reporter can report the same target once.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ReportRequest true "entityId is an email for users, a numeric id otherwise"
// @Success 201 {object} model.ReportResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /reports [post]
func (h *InteractionHandler) Report(c *gin.Context) {
	var req model.ReportRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.ReportResponse{Message: "Report submitted", Report: report})
}
