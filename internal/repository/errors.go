// Package repository holds the GORM-backed stores. The *gorm.DB handed to
// the constructors must be opened with TranslateError enabled so that unique
// violations surface as ErrDuplicate.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrDuplicate is returned when an insert or update hits a unique index.
	ErrDuplicate = gorm.ErrDuplicatedKey
)

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a unique violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
