package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quocanhngo/travelmate/internal/apperror"
)

// TargetKind is the wire tag selecting which entity a polymorphic reference
// points at.
type TargetKind string

const (
	TargetUser      TargetKind = "user"
	TargetPost      TargetKind = "post"
	TargetItinerary TargetKind = "itinerary"
	TargetComment   TargetKind = "comment"
)

// Target is a resolved-by-tag reference to exactly one entity. The set of
// implementations is closed; switch over it exhaustively.
type Target interface {
	Kind() TargetKind
	// Key is the slot value as it is stored ("a@b.c" or "42").
	Key() string
	isTarget()
}

// ContentTarget is the subset of targets that can be liked, bookmarked or
// commented on.
type ContentTarget interface {
	Target
	ContentID() uint
	isContent()
}

type UserTarget struct{ Email string }

type PostTarget struct{ ID uint }

type ItineraryTarget struct{ ID uint }

type CommentTarget struct{ ID uint }

func (UserTarget) Kind() TargetKind      { return TargetUser }
func (PostTarget) Kind() TargetKind      { return TargetPost }
func (ItineraryTarget) Kind() TargetKind { return TargetItinerary }
func (CommentTarget) Kind() TargetKind   { return TargetComment }

func (t UserTarget) Key() string      { return t.Email }
func (t PostTarget) Key() string      { return strconv.FormatUint(uint64(t.ID), 10) }
func (t ItineraryTarget) Key() string { return strconv.FormatUint(uint64(t.ID), 10) }
func (t CommentTarget) Key() string   { return strconv.FormatUint(uint64(t.ID), 10) }

func (UserTarget) isTarget()      {}
func (PostTarget) isTarget()      {}
func (ItineraryTarget) isTarget() {}
func (CommentTarget) isTarget()   {}

func (t PostTarget) ContentID() uint      { return t.ID }
func (t ItineraryTarget) ContentID() uint { return t.ID }

func (PostTarget) isContent()      {}
func (ItineraryTarget) isContent() {}

// ParseTarget turns a (tag, id) pair from a request into a Target.
// Users are addressed by email, everything else by numeric id.
func ParseTarget(tag, rawID string) (Target, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return nil, apperror.Validation("entityId is required")
	}
	kind := TargetKind(strings.ToLower(strings.TrimSpace(tag)))
	if kind == TargetUser {
		return UserTarget{Email: rawID}, nil
	}

	var id uint
	switch kind {
	case TargetPost, TargetItinerary, TargetComment:
		n, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil || n == 0 {
			return nil, apperror.Validation(fmt.Sprintf("invalid %s id %q", kind, rawID))
		}
		id = uint(n)
	default:
		return nil, apperror.Validation(fmt.Sprintf("invalid entity type %q", tag))
	}

	switch kind {
	case TargetPost:
		return PostTarget{ID: id}, nil
	case TargetItinerary:
		return ItineraryTarget{ID: id}, nil
	default:
		return CommentTarget{ID: id}, nil
	}
}

// ParseContentTarget accepts only "post" and "itinerary".
func ParseContentTarget(tag string, id uint) (ContentTarget, error) {
	switch TargetKind(strings.ToLower(strings.TrimSpace(tag))) {
	case TargetPost:
		if id == 0 {
			return nil, apperror.Validation("contentId is required")
		}
		return PostTarget{ID: id}, nil
	case TargetItinerary:
		if id == 0 {
			return nil, apperror.Validation("contentId is required")
		}
		return ItineraryTarget{ID: id}, nil
	default:
		return nil, apperror.Validation(fmt.Sprintf("invalid content type %q", tag))
	}
}

// ContentTargetOf builds a content target from the two mutually exclusive
// optional ids carried by comment requests. Exactly one must be set.
func ContentTargetOf(postID, itineraryID *uint) (ContentTarget, error) {
	hasPost := postID != nil && *postID != 0
	hasItinerary := itineraryID != nil && *itineraryID != 0
	switch {
	case hasPost && hasItinerary:
		return nil, apperror.Validation("only one of postId or itineraryId may be given")
	case hasPost:
		return PostTarget{ID: *postID}, nil
	case hasItinerary:
		return ItineraryTarget{ID: *itineraryID}, nil
	default:
		return nil, apperror.Validation("postId or itineraryId is required")
	}
}

// contentSlots splits a content target into its nullable column values.
func contentSlots(t ContentTarget) (postID, itineraryID *uint) {
	switch v := t.(type) {
	case PostTarget:
		id := v.ID
		return &id, nil
	case ItineraryTarget:
		id := v.ID
		return nil, &id
	default:
		panic(fmt.Sprintf("model: unhandled content target %T", t))
	}
}

// contentFromSlots is the inverse of contentSlots; nil when neither is set.
func contentFromSlots(postID, itineraryID *uint) ContentTarget {
	switch {
	case postID != nil:
		return PostTarget{ID: *postID}
	case itineraryID != nil:
		return ItineraryTarget{ID: *itineraryID}
	default:
		return nil
	}
}
