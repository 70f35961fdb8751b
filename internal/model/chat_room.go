package model

import "time"

// chatIDSeparator joins the two sorted emails of a pair.
const chatIDSeparator = "_"

// Pair is the canonical form of an unordered two-user relation.
type Pair struct {
	User1  string
	User2  string
	ChatID string
}

// NewPair orders a and b so that User1 <= User2 and derives the external
// chat id from that ordering. NewPair(a, b) == NewPair(b, a).
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{User1: a, User2: b, ChatID: a + chatIDSeparator + b}
}

// Self reports whether both sides are the same user.
func (p Pair) Self() bool {
	return p.User1 == p.User2
}

// Room returns a new, unsaved room for the pair initiated by createdBy.
func (p Pair) Room(createdBy string) *ChatRoom {
	return &ChatRoom{
		FirestoreChatID: p.ChatID,
		User1ID:         p.User1,
		User2ID:         p.User2,
		CreatedByUserID: &createdBy,
	}
}

// ChatRoom records that two users may chat. Messages live in Firestore
// under FirestoreChatID.
type ChatRoom struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	FirestoreChatID   string     `json:"firestoreChatId" gorm:"column:firestore_chat_id;size:255;uniqueIndex;not null"`
	User1ID           string     `json:"user1Id" gorm:"column:user1_id;size:255;uniqueIndex:idx_chat_rooms_pair;not null"`
	User2ID           string     `json:"user2Id" gorm:"column:user2_id;size:255;uniqueIndex:idx_chat_rooms_pair;not null"`
	CreatedByUserID   *string    `json:"createdByUserId" gorm:"column:created_by_user_id;size:255"`
	LastMessage       *string    `json:"lastMessage" gorm:"type:text"`
	LastMessageSentAt *time.Time `json:"lastMessageSentAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Partner returns the email of the other participant.
func (r *ChatRoom) Partner(me string) string {
	if r.User1ID == me {
		return r.User2ID
	}
	return r.User1ID
}

// RequestedBy reports whether email initiated the room.
func (r *ChatRoom) RequestedBy(email string) bool {
	return r.CreatedByUserID != nil && *r.CreatedByUserID == email
}

// LastActivity is the last message time, or creation time if none.
func (r *ChatRoom) LastActivity() time.Time {
	if r.LastMessageSentAt != nil {
		return *r.LastMessageSentAt
	}
	return r.CreatedAt
}
