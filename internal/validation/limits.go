// Package validation holds the per-field storage ceilings enforced at the API
// boundary and helpers for turning gin binding failures into domain errors.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quocanhngo/travelmate/internal/apperror"
)

// Column length ceilings, in characters.
const (
	MaxNickname        = 255
	MaxBio             = 65535
	MaxProfileImageURL = 512
	MaxGender          = 50
	MaxAgeRange        = 50

	MaxPostTitle   = 255
	MaxPostContent = 4 * 1024 * 1024

	MaxCommentContent = 65535

	MaxItineraryTitle       = 255
	MaxItineraryDescription = 65535

	MaxActivityTime        = 255
	MaxActivityDescription = 65535
	MaxActivityLocation    = 255

	MaxMessageContent = 65535

	MaxFCMToken   = 255
	MaxDeviceType = 50

	MaxReportType   = 255
	MaxReportReason = 65535
)

// LengthDetails is attached to length validation errors.
type LengthDetails struct {
	Field  string `json:"field"`
	Limit  int    `json:"limit"`
	Length int    `json:"length"`
}

// Field is one value to check against its ceiling.
type Field struct {
	Name  string
	Value string
	Max   int
}

// MaxLength returns a validation error when value exceeds max characters.
func MaxLength(field, value string, max int) error {
	n := utf8.RuneCountInString(value)
	if n <= max {
		return nil
	}
	return apperror.Validation(
		fmt.Sprintf("%s must not exceed %d characters (got %d)", field, max, n),
	).WithDetails(LengthDetails{Field: field, Limit: max, Length: n})
}

// MaxLengthPtr is MaxLength for optional fields; nil passes.
func MaxLengthPtr(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return MaxLength(field, *value, max)
}

// Lengths checks fields in order and returns the first violation.
func Lengths(fields ...Field) error {
	for _, f := range fields {
		if err := MaxLength(f.Name, f.Value, f.Max); err != nil {
			return err
		}
	}
	return nil
}

// Truncate trims surrounding whitespace and cuts value to max characters.
// Used for itinerary activity text, which is clipped rather than rejected.
func Truncate(value string, max int) string {
	s := strings.TrimSpace(value)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
