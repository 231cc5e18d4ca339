package seed

import (
	"testing"
	"time"

	"chatterverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoUsers(t *testing.T) {
	t.Parallel()

	users := DemoUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "sarah_johnson", users[0].Username)
	assert.Equal(t, "mike_smith", users[1].Username)

	seen := map[string]bool{}
	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.NotEmpty(t, u.Email)
		assert.False(t, seen[u.ID], "duplicate user id %s", u.ID)
		seen[u.ID] = true
	}
}

func TestDemoFixturesShareOnePassword(t *testing.T) {
	t.Parallel()

	for _, f := range DemoFixtures() {
		assert.Equal(t, demoPassword, f.Password)
	}
}

func TestDemoPosts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := DemoPosts(now)
	require.Len(t, posts, 3)

	// Feed order is newest first.
	for i := 1; i < len(posts); i++ {
		assert.True(t, posts[i-1].CreatedAt.After(posts[i].CreatedAt))
	}

	// The travel post arrives pre-liked and pre-commented.
	assert.Equal(t, []string{"1"}, posts[0].Likes)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, posts[0].ID, posts[0].Comments[0].PostID)

	// Like and saved sets are populated independently.
	assert.Equal(t, []string{"2"}, posts[1].Likes)
	assert.Equal(t, []string{"2"}, posts[1].Saved)
	assert.Empty(t, posts[0].Saved)
}

func TestDemoStoriesExpiryWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stories := DemoStories(now)
	require.Len(t, stories, 2)

	for _, s := range stories {
		assert.Equal(t, s.CreatedAt.Add(models.StoryTTL), s.ExpiresAt)
		assert.False(t, s.Expired(now))
	}

	// Both seeded stories are within their first two hours.
	assert.Equal(t, now.Add(-1*time.Hour), stories[0].CreatedAt)
	assert.Equal(t, now.Add(-2*time.Hour), stories[1].CreatedAt)
}

func TestDemoFollowsAreMutual(t *testing.T) {
	t.Parallel()

	follows := DemoFollows()
	require.Len(t, follows, 2)
	assert.Contains(t, follows, models.Follow{FollowerID: "1", FollowingID: "2"})
	assert.Contains(t, follows, models.Follow{FollowerID: "2", FollowingID: "1"})
}

func TestFactoryBuildUserOverrides(t *testing.T) {
	t.Parallel()

	f := NewFactory(Options{})
	user := f.BuildUser(func(u *models.User) {
		u.Username = "fixed_name"
	})
	assert.Equal(t, "fixed_name", user.Username)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.Avatar)
}

func TestFactoryBuildPost(t *testing.T) {
	t.Parallel()

	f := NewFactory(Options{MaxDays: 7})
	user := f.BuildUser()
	post := f.BuildPost(user)

	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, user.Username, post.Username)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
	assert.NotNil(t, post.Saved)
	assert.True(t, post.CreatedAt.Before(time.Now().Add(time.Minute)))
	assert.True(t, post.CreatedAt.After(time.Now().Add(-8*24*time.Hour)))
}

func TestFactoryBuildStory(t *testing.T) {
	t.Parallel()

	f := NewFactory(Options{})
	user := f.BuildUser()
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	story := f.BuildStory(user, createdAt)

	assert.Equal(t, createdAt, story.CreatedAt)
	assert.Equal(t, createdAt.Add(models.StoryTTL), story.ExpiresAt)
	assert.Equal(t, user.ID, story.UserID)
}
