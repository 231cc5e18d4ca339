// Package seed provides the built-in demo fixtures and helpers to generate
// larger demo datasets. The fixed fixtures are what a fresh install shows
// before anyone has posted; the factory is for development and testing only.
package seed

import (
	"time"

	"chatterverse/internal/auth"
	"chatterverse/internal/models"
)

// Demo passwords are plaintext on purpose: they feed the fixture credential
// provider, which is a closed demo list.
const demoPassword = "password123"

// DemoUsers returns the two built-in accounts.
func DemoUsers() []models.User {
	return []models.User{
		{
			ID:             "1",
			Username:       "sarah_johnson",
			Name:           "Sarah Johnson",
			Email:          "sarah@example.com",
			Bio:            "Photography enthusiast and coffee lover",
			Avatar:         "https://source.unsplash.com/collection/1346951/150x150?1",
			FollowersCount: 1204,
			FollowingCount: 567,
		},
		{
			ID:             "2",
			Username:       "mike_smith",
			Name:           "Mike Smith",
			Email:          "mike@example.com",
			Bio:            "Travel blogger and tech enthusiast",
			Avatar:         "https://source.unsplash.com/collection/1346951/150x150?2",
			FollowersCount: 845,
			FollowingCount: 412,
		},
	}
}

// DemoFixtures returns the demo accounts with their credentials, ready to
// preload an auth.FixtureProvider.
func DemoFixtures() []auth.Fixture {
	users := DemoUsers()
	fixtures := make([]auth.Fixture, len(users))
	for i, u := range users {
		fixtures[i] = auth.Fixture{User: u, Password: demoPassword}
	}
	return fixtures
}

// DemoPosts returns the initial feed, dated relative to now so the feed
// always looks a few days old.
func DemoPosts(now time.Time) []*models.Post {
	users := DemoUsers()
	sarah, mike := users[0], users[1]

	return []*models.Post{
		{
			ID:         "1",
			UserID:     mike.ID,
			Username:   mike.Username,
			UserAvatar: mike.Avatar,
			Content:    "Just visited this amazing place! What do you think?",
			Image:      "https://source.unsplash.com/1600x900/?travel",
			Likes:      []string{sarah.ID},
			Comments: []models.Comment{
				{
					ID:         "101",
					PostID:     "1",
					UserID:     sarah.ID,
					Username:   sarah.Username,
					UserAvatar: sarah.Avatar,
					Content:    "Looks awesome! Where is this?",
					CreatedAt:  now.Add(-10 * time.Hour),
				},
			},
			Saved:     []string{},
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:         "2",
			UserID:     sarah.ID,
			Username:   sarah.Username,
			UserAvatar: sarah.Avatar,
			Content:    "New camera setup finally arrived! Excited to try it out this weekend.",
			Image:      "https://source.unsplash.com/1600x900/?camera",
			Likes:      []string{mike.ID},
			Comments:   []models.Comment{},
			Saved:      []string{mike.ID},
			CreatedAt:  now.Add(-48 * time.Hour),
		},
		{
			ID:         "3",
			UserID:     mike.ID,
			Username:   mike.Username,
			UserAvatar: mike.Avatar,
			Content:    "Working from home today with my trusty companion.",
			Image:      "https://source.unsplash.com/1600x900/?cat",
			Likes:      []string{},
			Comments:   []models.Comment{},
			Saved:      []string{},
			CreatedAt:  now.Add(-72 * time.Hour),
		},
	}
}

// DemoStories returns the initial stories, created one and two hours before
// now so they are live for most of their 24h window.
func DemoStories(now time.Time) []*models.Story {
	users := DemoUsers()
	sarah, mike := users[0], users[1]

	stories := []*models.Story{
		{
			ID:         "1",
			UserID:     sarah.ID,
			Username:   sarah.Username,
			UserAvatar: sarah.Avatar,
			Image:      "https://source.unsplash.com/1600x900/?sunset",
			CreatedAt:  now.Add(-1 * time.Hour),
		},
		{
			ID:         "2",
			UserID:     mike.ID,
			Username:   mike.Username,
			UserAvatar: mike.Avatar,
			Image:      "https://source.unsplash.com/1600x900/?mountain",
			CreatedAt:  now.Add(-2 * time.Hour),
		},
	}
	for _, s := range stories {
		s.ExpiresAt = s.CreatedAt.Add(models.StoryTTL)
	}
	return stories
}

// DemoFollows returns the initial follow graph: the two demo accounts
// follow each other.
func DemoFollows() []models.Follow {
	return []models.Follow{
		{FollowerID: "1", FollowingID: "2"},
		{FollowerID: "2", FollowingID: "1"},
	}
}
