package model

import (
	"fmt"
	"time"
)

const ReportStatusPending = "pending"

// Report targets exactly one user, post, itinerary or comment.
type Report struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	ReporterUserID      string    `json:"reporterUserId" gorm:"size:255;index;not null"`
	ReportedUserID      *string   `json:"reportedUserId" gorm:"size:255"`
	ReportedPostID      *uint     `json:"reportedPostId"`
	ReportedItineraryID *uint     `json:"reportedItineraryId"`
	ReportedCommentID   *uint     `json:"reportedCommentId"`
	ReportType          string    `json:"reportType" gorm:"size:255;not null"`
	Reason              *string   `json:"reason" gorm:"type:text"`
	Status              string    `json:"status" gorm:"size:50;not null;default:'pending'"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// SetTarget clears all target slots and fills the one matching t.
func (r *Report) SetTarget(t Target) {
	r.ReportedUserID, r.ReportedPostID, r.ReportedItineraryID, r.ReportedCommentID = nil, nil, nil, nil
	switch v := t.(type) {
	case UserTarget:
		email := v.Email
		r.ReportedUserID = &email
	case PostTarget:
		id := v.ID
		r.ReportedPostID = &id
	case ItineraryTarget:
		id := v.ID
		r.ReportedItineraryID = &id
	case CommentTarget:
		id := v.ID
		r.ReportedCommentID = &id
	default:
		panic(fmt.Sprintf("model: unhandled report target %T", t))
	}
}

// Target returns the reported entity, or nil for a row with no slot set.
func (r *Report) Target() Target {
	switch {
	case r.ReportedUserID != nil:
		return UserTarget{Email: *r.ReportedUserID}
	case r.ReportedPostID != nil:
		return PostTarget{ID: *r.ReportedPostID}
	case r.ReportedItineraryID != nil:
		return ItineraryTarget{ID: *r.ReportedItineraryID}
	case r.ReportedCommentID != nil:
		return CommentTarget{ID: *r.ReportedCommentID}
	default:
		return nil
	}
}

// ReportTargetColumn is the column holding the slot for kind.
func ReportTargetColumn(kind TargetKind) string {
	switch kind {
	case TargetUser:
		return "reported_user_id"
	case TargetPost:
		return "reported_post_id"
	case TargetItinerary:
		return "reported_itinerary_id"
	case TargetComment:
		return "reported_comment_id"
	default:
		panic(fmt.Sprintf("model: unknown target kind %q", string(kind)))
	}
}
