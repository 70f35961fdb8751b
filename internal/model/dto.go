package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ========== Common ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListQuery struct {
	Search string `form:"search" binding:"max=255"`
	Limit  int    `form:"limit,default=10" binding:"min=0,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// EntityRef is an id that clients send either as a JSON string or a number.
type EntityRef string

func (r *EntityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = EntityRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entity id must be a string or number")
	}
	*r = EntityRef(n.String())
	return nil
}

func (r EntityRef) String() string { return string(r) }

// Uint parses the reference as a positive numeric id; 0 when it is not one.
func (r EntityRef) Uint() uint {
	n, err := strconv.ParseUint(string(r), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// ========== Auth DTOs ==========

type MeResponse struct {
	User User `json:"user"`
}

// ========== Profile DTOs ==========

// UpdateProfileRequest fields are optional; nil means "not sent".
type UpdateProfileRequest struct {
	Nickname              *string    `json:"nickname"`
	Bio                   *string    `json:"bio"`
	ProfileImageURL       *string    `json:"profileImageUrl"`
	Gender                *string    `json:"gender"`
	AgeRange              *string    `json:"ageRange"`
	TravelStyles          StringList `json:"travelStyles"`
	Interests             StringList `json:"interests"`
	PreferredDestinations StringList `json:"preferredDestinations"`
}

type UpdateProfileImageRequest struct {
	ProfileImageURL string `json:"profileImageUrl" binding:"required"`
}

type ProfileResponse struct {
	Message     string       `json:"message,omitempty"`
	UserProfile *UserProfile `json:"userProfile"`
}

type ProfileImageResponse struct {
	Message         string `json:"message"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// ========== Message DTOs ==========

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type PrivateMessageResponse struct {
	Message        string          `json:"message"`
	PrivateMessage *PrivateMessage `json:"privateMessage"`
}

// ========== FCM DTOs ==========

type RegisterFCMTokenRequest struct {
	Token      string  `json:"token" binding:"required"`
	DeviceType *string `json:"deviceType"`
}

type DeleteFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type FcmTokenResponse struct {
	Message  string    `json:"message"`
	FcmToken *FcmToken `json:"fcmToken"`
}

// ========== Chat DTOs ==========

type ChatRoomRequest struct {
	PartnerID string `json:"partnerId" binding:"required"`
}

type ChatRoomResponse struct {
	Message         string `json:"message"`
	ChatRoomID      string `json:"chatRoomId"`
	IsRequestedByMe bool   `json:"isRequestedByMe"`
}

type ChatRoomSummary struct {
	ChatRoomID             string    `json:"chatRoomId"`
	PartnerEmail           string    `json:"partnerEmail"`
	PartnerNickname        string    `json:"partnerNickname"`
	PartnerProfileImageURL *string   `json:"partnerProfileImageUrl"`
	LastMessage            string    `json:"lastMessage"`
	LastMessageAt          time.Time `json:"lastMessageAt"`
	IsRequestedByMe        bool      `json:"isRequestedByMe"`
}

type ChatRoomListResponse struct {
	ChatRooms []ChatRoomSummary `json:"chatRooms"`
}

// ========== Post DTOs ==========

type PostListQuery struct {
	ListQuery
	Category string `form:"category" binding:"max=100"`
}

type CreatePostRequest struct {
	Title     string     `json:"title" binding:"required"`
	Content   string     `json:"content" binding:"required"`
	Category  string     `json:"category" binding:"required"`
	ImageURLs StringList `json:"imageUrls"`
}

type UpdatePostRequest struct {
	Title     *string    `json:"title"`
	Content   *string    `json:"content"`
	Category  *string    `json:"category"`
	ImageURLs StringList `json:"imageUrls"`
}

type PostListResponse struct {
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Posts  []Post `json:"posts"`
}

type PostResponse struct {
	Message string `json:"message,omitempty"`
	Post    *Post  `json:"post"`
}

// ========== Itinerary DTOs ==========

type ActivityInput struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Coordinates JSON   `json:"coordinates"`
}

type DayInput struct {
	DayNumber  int             `json:"dayNumber"`
	Date       Date            `json:"date"`
	Activities []ActivityInput `json:"activities"`
}

type CreateItineraryRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   Date       `json:"startDate"`
	EndDate     Date       `json:"endDate"`
	ImageURLs   StringList `json:"imageUrls"`
	MapData     JSON       `json:"mapData"`
	Days        []DayInput `json:"days"`
}

// UpdateItineraryRequest distinguishes an absent days key (nil) from an
// explicit empty list.
type UpdateItineraryRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	StartDate   *Date       `json:"startDate"`
	EndDate     *Date       `json:"endDate"`
	ImageURLs   StringList  `json:"imageUrls"`
	MapData     JSON        `json:"mapData"`
	Days        *[]DayInput `json:"days"`
}

type ItineraryListResponse struct {
	Total       int64       `json:"total"`
	Limit       int         `json:"limit"`
	Offset      int         `json:"offset"`
	Itineraries []Itinerary `json:"itineraries"`
}

type ItineraryResponse struct {
	Message   string     `json:"message,omitempty"`
	Itinerary *Itinerary `json:"itinerary"`
}

// ========== Comment DTOs ==========

type CommentListQuery struct {
	PostID      *uint `form:"postId"`
	ItineraryID *uint `form:"itineraryId"`
}

type CreateCommentRequest struct {
	PostID          *uint  `json:"postId"`
	ItineraryID     *uint  `json:"itineraryId"`
	ParentCommentID *uint  `json:"parentCommentId"`
	Content         string `json:"content" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentListResponse struct {
	Comments []Comment `json:"comments"`
}

type CommentResponse struct {
	Message string   `json:"message"`
	Comment *Comment `json:"comment"`
}

// ========== Interaction DTOs ==========

type InteractionRequest struct {
	ContentID   EntityRef `json:"contentId" binding:"required"`
	ContentType string    `json:"contentType" binding:"required"`
}

type InteractionStatusQuery struct {
	ContentID   uint   `form:"contentId" binding:"required"`
	ContentType string `form:"contentType" binding:"required"`
}

type LikeResponse struct {
	Message         string `json:"message"`
	IsLiked         bool   `json:"isLiked"`
	LikeCountChange int    `json:"likeCountChange"`
}

type BookmarkResponse struct {
	Message      string `json:"message"`
	IsBookmarked bool   `json:"isBookmarked"`
}

type InteractionStatus struct {
	IsLiked      bool  `json:"isLiked"`
	IsBookmarked bool  `json:"isBookmarked"`
	LikeCount    int64 `json:"likeCount"`
}

// ========== Report DTOs ==========

type ReportRequest struct {
	EntityType string    `json:"entityType" binding:"required"`
	EntityID   EntityRef `json:"entityId" binding:"required"`
	ReportType string    `json:"reportType" binding:"required"`
	Reason     *string   `json:"reason"`
}

type ReportResponse struct {
	Message string  `json:"message"`
	Report  *Report `json:"report"`
}

// ========== Upload DTOs ==========

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

type UploadMultipleResponse struct {
	Files []UploadResponse `json:"files"`
}
