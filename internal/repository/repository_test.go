package repository

import (
	"fmt"
	"testing"

	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "서울", escapeLike("서울"))
}

func TestSlotValueKeepsColumnTypes(t *testing.T) {
	assert.Equal(t, "a@b.c", slotValue(model.UserTarget{Email: "a@b.c"}))
	assert.Equal(t, uint(3), slotValue(model.PostTarget{ID: 3}))
	assert.Equal(t, uint(4), slotValue(model.ItineraryTarget{ID: 4}))
	assert.Equal(t, uint(5), slotValue(model.CommentTarget{ID: 5}))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", ErrNotFound)))
	assert.True(t, IsDuplicate(fmt.Errorf("insert: %w", ErrDuplicate)))
	assert.False(t, IsDuplicate(ErrNotFound))
}
