package model

import (
	"fmt"
	"time"
)

// InteractionKind selects the fact table a toggle operates on.
type InteractionKind string

const (
	InteractionLike     InteractionKind = "like"
	InteractionBookmark InteractionKind = "bookmark"
)

// Table is the backing table for the kind.
func (k InteractionKind) Table() string {
	switch k {
	case InteractionLike:
		return "likes"
	case InteractionBookmark:
		return "bookmarks"
	default:
		panic(fmt.Sprintf("model: unknown interaction kind %q", string(k)))
	}
}

// InteractionFact is a row in likes or bookmarks. UserID is users.id.
// Exactly one of PostID/ItineraryID is set.
type InteractionFact struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null"`
	PostID      *uint     `json:"postId"`
	ItineraryID *uint     `json:"itineraryId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewInteractionFact builds the fact for user on target.
func NewInteractionFact(userID uint, t ContentTarget) *InteractionFact {
	f := &InteractionFact{UserID: userID}
	f.PostID, f.ItineraryID = contentSlots(t)
	return f
}

func (f *InteractionFact) Target() ContentTarget {
	return contentFromSlots(f.PostID, f.ItineraryID)
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	Added bool
}

// CountChange is +1 when a fact was added and -1 when removed.
func (r ToggleResult) CountChange() int {
	if r.Added {
		return 1
	}
	return -1
}
