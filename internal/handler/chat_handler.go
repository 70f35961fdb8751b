package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// ChatHandler handles chat room endpoints. Messages themselves go through
// Firestore; the API only pairs users into rooms.
type ChatHandler struct {
	chat ChatUseCases
}

func NewChatHandler(chat ChatUseCases) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// RequestRoom godoc
// @Summary Get or create a chat room with another user
// @Description Either participant gets the same room. 201 when created, 200 when it already existed.
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ChatRoomRequest true "Partner email"
// @Success 200 {object} model.ChatRoomResponse
// @Success 201 {object} model.ChatRoomResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /chat/room [post]
func (h *ChatHandler) RequestRoom(c *gin.Context) {
	var req model.ChatRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.chat.RequestRoom(c.Request.Context(), middleware.GetPrincipal(c), req.PartnerID)
	if err != nil {
		fail(c, err)
		return
	}

	status, msg := http.StatusOK, "Chat room already exists"
	if res.Created {
		status, msg = http.StatusCreated, "Chat request sent. Pick the room from your chat list to start talking."
	}
	c.JSON(status, model.ChatRoomResponse{
		Message:         msg,
		ChatRoomID:      res.Room.FirestoreChatID,
		IsRequestedByMe: res.IsRequestedByMe,
	})
}

// ListRooms godoc
// @Summary List my chat rooms
// @Description Most recently active first.
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ChatRoomListResponse
// @Router /chat/rooms [get]
func (h *ChatHandler) ListRooms(c *gin.Context) {
	rooms, err := h.chat.ListRooms(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ChatRoomListResponse{ChatRooms: rooms})
}
