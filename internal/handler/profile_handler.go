package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// ProfileHandler handles user profile endpoints. The :userId path segment
// is the user's email.
type ProfileHandler struct {
	profiles ProfileUseCases
}

func NewProfileHandler(profiles ProfileUseCases) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetMyProfile godoc
// @Summary Get my profile
// @Description Creates the profile with a generated nickname on first access.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProfileResponse
// @Success 201 {object} model.ProfileResponse
// @Router /users/profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	h.get(c, "")
}

// GetProfile godoc
// @Summary Get a user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User email"
// @Success 200 {object} model.ProfileResponse
// @Success 201 {object} model.ProfileResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /users/{userId}/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	h.get(c, c.Param("userId"))
}

func (h *ProfileHandler) get(c *gin.Context, email string) {
	profile, created, err := h.profiles.Get(c.Request.Context(), middleware.GetPrincipal(c), email)
	if err != nil {
		fail(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, model.ProfileResponse{Message: "Profile created", UserProfile: profile})
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{UserProfile: profile})
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Only fields present in the body are changed.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User email"
// @Param body body model.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.ProfileResponse
// @Success 201 {object} model.ProfileResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /users/{userId}/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, created, err := h.profiles.Update(c.Request.Context(), middleware.GetPrincipal(c), c.Param("userId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, model.ProfileResponse{Message: "Profile created and updated", UserProfile: profile})
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{Message: "Profile updated", UserProfile: profile})
}

// UpdateProfileImage godoc
// @Summary Set my profile image URL
// @Description The image itself is uploaded with POST /upload/profile first.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User email"
// @Param body body model.UpdateProfileImageRequest true "Image URL"
// @Success 200 {object} model.ProfileImageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /users/{userId}/profile-image [put]
func (h *ProfileHandler) UpdateProfileImage(c *gin.Context) {
	var req model.UpdateProfileImageRequest
	if !bindJSON(c, &req) {
		return
	}

	url, err := h.profiles.UpdateImage(c.Request.Context(), middleware.GetPrincipal(c), c.Param("userId"), req.ProfileImageURL)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ProfileImageResponse{Message: "Profile image updated", ProfileImageURL: url})
}
