package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairIsOrderIndependent(t *testing.T) {
	ab := NewPair("alice@example.com", "bob@example.com")
	ba := NewPair("bob@example.com", "alice@example.com")

	assert.Equal(t, ab, ba)
	assert.Equal(t, "alice@example.com", ab.User1)
	assert.Equal(t, "bob@example.com", ab.User2)
	assert.Equal(t, "alice@example.com_bob@example.com", ab.ChatID)
	assert.False(t, ab.Self())
	assert.True(t, NewPair("a@x", "a@x").Self())
}

func TestPairRoomRecordsInitiator(t *testing.T) {
	room := NewPair("z@x", "a@x").Room("z@x")
	assert.Equal(t, "a@x", room.User1ID)
	assert.Equal(t, "z@x", room.User2ID)
	assert.True(t, room.RequestedBy("z@x"))
	assert.False(t, room.RequestedBy("a@x"))
	assert.Equal(t, "a@x", room.Partner("z@x"))
}

func TestChatRoomLastActivityFallsBackToCreation(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	room := &ChatRoom{CreatedAt: created}
	assert.Equal(t, created, room.LastActivity())

	sent := created.Add(time.Hour)
	room.LastMessageSentAt = &sent
	assert.Equal(t, sent, room.LastActivity())
}

func TestParseTarget(t *testing.T) {
	cases := []struct {
		tag, id string
		want    Target
	}{
		{"user", "someone@example.com", UserTarget{Email: "someone@example.com"}},
		{"post", "12", PostTarget{ID: 12}},
		{"ITINERARY", " 7 ", ItineraryTarget{ID: 7}},
		{"comment", "3", CommentTarget{ID: 3}},
	}
	for _, tc := range cases {
		got, err := ParseTarget(tc.tag, tc.id)
		require.NoError(t, err, tc.tag)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseTargetRejectsBadInput(t *testing.T) {
	for _, tc := range []struct{ tag, id string }{
		{"video", "1"},
		{"post", "abc"},
		{"comment", "0"},
		{"user", ""},
	} {
		_, err := ParseTarget(tc.tag, tc.id)
		require.Error(t, err, tc)
		assert.True(t, errors.Is(err, apperror.ErrValidation), tc)
	}
}

func TestParseContentTargetOnlyAcceptsContent(t *testing.T) {
	got, err := ParseContentTarget("post", 4)
	require.NoError(t, err)
	assert.Equal(t, PostTarget{ID: 4}, got)

	_, err = ParseContentTarget("user", 4)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	_, err = ParseContentTarget("comment", 4)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestContentTargetOfRequiresExactlyOne(t *testing.T) {
	one, two := uint(1), uint(2)

	got, err := ContentTargetOf(&one, nil)
	require.NoError(t, err)
	assert.Equal(t, PostTarget{ID: 1}, got)

	got, err = ContentTargetOf(nil, &two)
	require.NoError(t, err)
	assert.Equal(t, ItineraryTarget{ID: 2}, got)

	_, err = ContentTargetOf(&one, &two)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	_, err = ContentTargetOf(nil, nil)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestReportSetTargetFillsExactlyOneSlot(t *testing.T) {
	r := &Report{}
	r.SetTarget(PostTarget{ID: 9})
	require.NotNil(t, r.ReportedPostID)
	assert.Equal(t, uint(9), *r.ReportedPostID)

	r.SetTarget(UserTarget{Email: "x@y"})
	assert.Nil(t, r.ReportedPostID)
	assert.Nil(t, r.ReportedItineraryID)
	assert.Nil(t, r.ReportedCommentID)
	require.NotNil(t, r.ReportedUserID)
	assert.Equal(t, UserTarget{Email: "x@y"}, r.Target())
}

func TestInteractionFactTargetRoundTrip(t *testing.T) {
	f := NewInteractionFact(5, ItineraryTarget{ID: 11})
	assert.Nil(t, f.PostID)
	assert.Equal(t, ItineraryTarget{ID: 11}, f.Target())
	assert.Equal(t, "likes", InteractionLike.Table())
	assert.Equal(t, "bookmarks", InteractionBookmark.Table())
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09"`), &d))
	assert.Equal(t, "2024-03-09", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-09"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09T15:04:05Z"`), &d))
	assert.Equal(t, "2024-03-09", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &d))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestStringListScan(t *testing.T) {
	var s StringList
	require.NoError(t, s.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, StringList{}, s)

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestJSONOrEmptyArray(t *testing.T) {
	assert.Equal(t, EmptyArray, JSON(nil).OrEmptyArray())
	assert.Equal(t, EmptyArray, JSON("null").OrEmptyArray())
	assert.Equal(t, JSON(`[{"lat":1}]`), JSON(`[{"lat":1}]`).OrEmptyArray())
}

func TestEntityRefAcceptsStringOrNumber(t *testing.T) {
	var req ReportRequest
	require.NoError(t, json.Unmarshal([]byte(`{"entityType":"post","entityId":42}`), &req))
	assert.Equal(t, EntityRef("42"), req.EntityID)
	assert.Equal(t, uint(42), req.EntityID.Uint())

	require.NoError(t, json.Unmarshal([]byte(`{"entityType":"user","entityId":"a@b.c"}`), &req))
	assert.Equal(t, "a@b.c", req.EntityID.String())
	assert.Equal(t, uint(0), req.EntityID.Uint())
}

func TestUpdateItineraryRequestDistinguishesAbsentDays(t *testing.T) {
	var absent, empty UpdateItineraryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"days":[]}`), &empty))

	assert.Nil(t, absent.Days)
	require.NotNil(t, empty.Days)
	assert.Empty(t, *empty.Days)
}
