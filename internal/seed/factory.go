package seed

import (
	"fmt"
	"time"

	"chatterverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/xid"
)

// Options configuration for the factory
type Options struct {
	// MaxDays bounds how far back generated post timestamps spread.
	MaxDays int
}

// Factory builds domain entities with generated content. It is a thin
// helper used by the demo command and tests; nothing here persists.
type Factory struct {
	opts Options
}

// NewFactory creates a new Factory.
func NewFactory(opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{opts: opts}
}

// BuildUser constructs a sample user. Optional override functions may
// modify the generated user before it is returned.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		ID:             xid.New().String(),
		Username:       fmt.Sprintf("%s_%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Name:           gofakeit.Name(),
		Email:          gofakeit.Email(),
		Bio:            gofakeit.Sentence(10),
		Avatar:         fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		FollowersCount: gofakeit.Number(0, 2000),
		FollowingCount: gofakeit.Number(0, 1000),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildPost constructs a sample post attributed to the given user, with a
// created_at spread over the recent past.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	createdAt := time.Now().
		Add(-time.Duration(gofakeit.Number(0, maxDays-1)) * 24 * time.Hour).
		Add(-time.Duration(gofakeit.Number(0, 23)) * time.Hour).
		Add(-time.Duration(gofakeit.Number(0, 59)) * time.Minute)

	post := &models.Post{
		ID:         xid.New().String(),
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Content:    gofakeit.Sentence(12),
		Image:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Likes:      []string{},
		Comments:   []models.Comment{},
		Saved:      []string{},
		CreatedAt:  createdAt,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// BuildComment constructs a sample comment by the given user on the post.
func (f *Factory) BuildComment(post *models.Post, user *models.User, overrides ...func(*models.Comment)) *models.Comment {
	comment := &models.Comment{
		ID:         xid.New().String(),
		PostID:     post.ID,
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Content:    gofakeit.Sentence(6),
		CreatedAt:  time.Now(),
	}
	for _, override := range overrides {
		override(comment)
	}
	return comment
}

// BuildStory constructs a sample story created at the given time.
func (f *Factory) BuildStory(user *models.User, createdAt time.Time, overrides ...func(*models.Story)) *models.Story {
	story := &models.Story{
		ID:         xid.New().String(),
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Image:      fmt.Sprintf("https://picsum.photos/seed/story-%s/1080/1920", gofakeit.UUID()),
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(models.StoryTTL),
	}
	for _, override := range overrides {
		override(story)
	}
	return story
}
