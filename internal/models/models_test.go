package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryExpired(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	story := &Story{CreatedAt: createdAt, ExpiresAt: createdAt.Add(StoryTTL)}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just created", createdAt, false},
		{"one second before expiry", story.ExpiresAt.Add(-time.Second), false},
		{"exactly at expiry", story.ExpiresAt, true},
		{"after expiry", story.ExpiresAt.Add(time.Second), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, story.Expired(tt.now))
		})
	}
}

func TestPostCloneIsDeep(t *testing.T) {
	t.Parallel()

	original := &Post{
		ID:       "1",
		Likes:    []string{"1"},
		Saved:    []string{"2"},
		Comments: []Comment{{ID: "101", Content: "hi"}},
	}

	clone := original.Clone()
	clone.Likes[0] = "x"
	clone.Saved = append(clone.Saved, "3")
	clone.Comments[0].Content = "edited"

	assert.Equal(t, []string{"1"}, original.Likes)
	assert.Equal(t, []string{"2"}, original.Saved)
	assert.Equal(t, "hi", original.Comments[0].Content)
}

func TestPostMembership(t *testing.T) {
	t.Parallel()

	p := &Post{Likes: []string{"1"}, Saved: []string{"2"}}
	assert.True(t, p.LikedBy("1"))
	assert.False(t, p.LikedBy("2"))
	assert.True(t, p.SavedBy("2"))
	assert.False(t, p.SavedBy("1"))
}

func TestClonePostsPreservesOrder(t *testing.T) {
	t.Parallel()

	posts := []*Post{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	clones := ClonePosts(posts)
	require.Len(t, clones, 3)
	for i := range posts {
		assert.Equal(t, posts[i].ID, clones[i].ID)
		assert.NotSame(t, posts[i], clones[i])
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := assert.AnError
	err := NewInternalError(inner)
	assert.Equal(t, CodeInternal, err.Code)
	assert.ErrorIs(t, err, inner)

	cred := NewInvalidCredentialsError()
	assert.Equal(t, CodeInvalidCredentials, cred.Code)
	assert.NoError(t, cred.Unwrap())
}
