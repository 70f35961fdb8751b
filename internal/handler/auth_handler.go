package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth AuthUseCases
}

func NewAuthHandler(auth AuthUseCases) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Me godoc
// @Summary Get the current user
// @Description Returns the authenticated user, creating the account on first sign-in.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MeResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MeResponse{User: *user})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the bearer token until it expires.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.auth.Logout(c.Request.Context(), middleware.GetPrincipal(c), middleware.GetBearerToken(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}
