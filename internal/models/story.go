package models

import "time"

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// Story represents an ephemeral story. ExpiresAt is always CreatedAt plus
// StoryTTL; the social store sweeps expired stories out on a timer.
type Story struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Expired reports whether the story is eligible for removal at the given
// time. Expiry is inclusive: a story whose ExpiresAt equals now is expired.
func (s *Story) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Clone returns an independent copy of the story.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// CloneStories deep-copies a story slice, preserving order.
func CloneStories(stories []*Story) []*Story {
	out := make([]*Story, len(stories))
	for i, s := range stories {
		out[i] = s.Clone()
	}
	return out
}
