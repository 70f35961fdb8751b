package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// MessageHandler handles private messages and push token registration
type MessageHandler struct {
	messages MessageUseCases
	tokens   FcmTokenUseCases
}

func NewMessageHandler(messages MessageUseCases, tokens FcmTokenUseCases) *MessageHandler {
	return &MessageHandler{messages: messages, tokens: tokens}
}

// SendMessage godoc
// @Summary Send a private message
// @Description Stores the message and pushes a notification to the receiver's devices.
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.SendMessageRequest true "Receiver email and content"
// @Success 201 {object} model.PrivateMessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req model.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.PrivateMessageResponse{Message: "Message sent", PrivateMessage: msg})
}

// RegisterToken godoc
// @Summary Register an FCM device token
// @Description Registering a known token again only updates its device type.
// @Tags FCM
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.RegisterFCMTokenRequest true "Device token"
// @Success 200 {object} model.FcmTokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /fcm/token [post]
func (h *MessageHandler) RegisterToken(c *gin.Context) {
	var req model.RegisterFCMTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.tokens.Register(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.FcmTokenResponse{Message: "FCM token registered", FcmToken: token})
}

// DeleteToken godoc
// @Summary Remove an FCM device token
// @Tags FCM
// @Accept json
// @Security BearerAuth
// @Param body body model.DeleteFCMTokenRequest true "Device token"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /fcm/token [delete]
func (h *MessageHandler) DeleteToken(c *gin.Context) {
	var req model.DeleteFCMTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.tokens.Delete(c.Request.Context(), middleware.GetPrincipal(c), req.Token); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
