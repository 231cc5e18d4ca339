package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"chatterverse/internal/models"
	"chatterverse/internal/observability"
	"chatterverse/internal/storage"

	"github.com/rs/xid"
)

// defaultSweepInterval is how often the story-expiry sweep runs.
const defaultSweepInterval = 60 * time.Second

// CurrentUserSource supplies the authenticated user the social store
// attributes mutations to. *IdentityStore satisfies it.
type CurrentUserSource interface {
	CurrentUser() (*models.User, bool)
}

// SeedData is the content a fresh store starts with when durable storage
// has no snapshot for a collection. Seeding is explicit at bootstrap (cmd)
// or test setup, never implied by the store itself.
type SeedData struct {
	Posts   []*models.Post
	Stories []*models.Story
	Follows []models.Follow
}

// SocialStore owns the post, story, and follow-edge collections. All
// mutations require an authenticated user; unauthenticated attempts are
// silent no-ops. Every committed mutation rewrites the full snapshot of all
// collections to durable storage, and no mutation is committed in memory
// unless that write succeeds.
type SocialStore struct {
	mu      sync.RWMutex
	users   CurrentUserSource
	storage storage.Store
	logger  *observability.Logger

	posts   []*models.Post
	stories []*models.Story
	follows []models.Follow

	now           func() time.Time
	sweepInterval time.Duration
	done          chan struct{}
	wg            sync.WaitGroup
	closeOnce     sync.Once
}

// SocialOption configures a SocialStore.
type SocialOption func(*SocialStore)

// WithSocialLogger sets the store's logger.
func WithSocialLogger(l *observability.Logger) SocialOption {
	return func(s *SocialStore) { s.logger = l }
}

// WithSeedData sets the content used when durable storage is empty.
func WithSeedData(seed SeedData) SocialOption {
	return func(s *SocialStore) {
		s.posts = seed.Posts
		s.stories = seed.Stories
		s.follows = seed.Follows
	}
}

// WithSweepInterval overrides the story-expiry sweep cadence.
func WithSweepInterval(d time.Duration) SocialOption {
	return func(s *SocialStore) { s.sweepInterval = d }
}

// WithNow overrides the store's clock. Tests use it to control story
// expiry without sleeping.
func WithNow(now func() time.Time) SocialOption {
	return func(s *SocialStore) { s.now = now }
}

// NewSocialStore loads the persisted collections (falling back to seed data
// for any missing key), runs one expiry sweep, and starts the recurring
// sweep. Callers own the store's lifecycle and must Close it.
func NewSocialStore(ctx context.Context, users CurrentUserSource, st storage.Store, opts ...SocialOption) (*SocialStore, error) {
	s := &SocialStore{
		users:         users,
		storage:       st,
		logger:        observability.NewLogger(""),
		posts:         []*models.Post{},
		stories:       []*models.Story{},
		follows:       []models.Follow{},
		now:           time.Now,
		sweepInterval: defaultSweepInterval,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	// Sweep once at startup so stale stories never reach the first read.
	s.sweep(ctx)

	s.wg.Add(1)
	go s.sweepLoop()
	return s, nil
}

// load restores each collection from its snapshot key. A missing key keeps
// whatever seed data the store was constructed with.
func (s *SocialStore) load(ctx context.Context) error {
	var posts []*models.Post
	found, err := storage.GetJSON(ctx, s.storage, storage.KeyPosts, &posts)
	if err != nil {
		return fmt.Errorf("restore posts: %w", err)
	}
	if found {
		s.posts = posts
	}

	var stories []*models.Story
	found, err = storage.GetJSON(ctx, s.storage, storage.KeyStories, &stories)
	if err != nil {
		return fmt.Errorf("restore stories: %w", err)
	}
	if found {
		s.stories = stories
	}

	var follows []models.Follow
	found, err = storage.GetJSON(ctx, s.storage, storage.KeyFollows, &follows)
	if err != nil {
		return fmt.Errorf("restore follows: %w", err)
	}
	if found {
		s.follows = follows
	}
	return nil
}

// Close stops the expiry sweep. The store remains usable for synchronous
// operations afterwards, but nothing expires on its own.
func (s *SocialStore) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *SocialStore) sweepLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep(context.Background())
		}
	}
}

// sweep removes every story whose expiry is at or before the current time.
func (s *SocialStore) sweep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	observability.SweepRuns.Inc()

	now := s.now()
	kept := make([]*models.Story, 0, len(s.stories))
	for _, story := range s.stories {
		if !story.Expired(now) {
			kept = append(kept, story)
		}
	}
	removed := len(s.stories) - len(kept)
	if removed == 0 {
		return
	}

	if err := s.persist(ctx, storage.KeyStories, s.posts, kept, s.follows); err != nil {
		// Keep the expired stories in memory; the next sweep retries.
		s.logger.LogOperationError(ctx, "social", "sweep", err)
		return
	}
	s.stories = kept
	observability.StoriesExpired.Add(float64(removed))
	s.logger.LogOperation(ctx, "social", "sweep", map[string]any{"expired": removed})
}

// CreatePost builds a post attributed to the current user and prepends it
// to the feed, so default ordering is reverse creation order. Silent no-op
// when anonymous.
func (s *SocialStore) CreatePost(ctx context.Context, content, image string) (*models.Post, error) {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		ID:         xid.New().String(),
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Content:    content,
		Image:      image,
		Likes:      []string{},
		Comments:   []models.Comment{},
		Saved:      []string{},
		CreatedAt:  s.now(),
	}

	posts := append([]*models.Post{post}, s.posts...)
	if err := s.persist(ctx, storage.KeyPosts, posts, s.stories, s.follows); err != nil {
		return nil, err
	}
	s.posts = posts
	observability.StoreMutations.WithLabelValues("social", "create_post").Inc()
	s.logger.LogOperation(ctx, "social", "create_post", map[string]any{"post_id": post.ID, "user_id": user.ID})
	return post.Clone(), nil
}

// DeletePost removes a post owned by the current user. Deleting someone
// else's post, a missing post, or deleting while anonymous is a silent
// no-op: the operation is only ever reached from an authorized UI path.
func (s *SocialStore) DeletePost(ctx context.Context, postID string) error {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfPost(postID)
	if idx < 0 || s.posts[idx].UserID != user.ID {
		return nil
	}

	posts := make([]*models.Post, 0, len(s.posts)-1)
	posts = append(posts, s.posts[:idx]...)
	posts = append(posts, s.posts[idx+1:]...)
	if err := s.persist(ctx, storage.KeyPosts, posts, s.stories, s.follows); err != nil {
		return err
	}
	s.posts = posts
	observability.StoreMutations.WithLabelValues("social", "delete_post").Inc()
	s.logger.LogOperation(ctx, "social", "delete_post", map[string]any{"post_id": postID, "user_id": user.ID})
	return nil
}

// LikePost toggles the current user's membership in the post's like set.
// Calling it twice restores the original set. Comments and saves are
// untouched.
func (s *SocialStore) LikePost(ctx context.Context, postID string) error {
	return s.togglePostSet(ctx, postID, "like_post", func(p *models.Post, userID string) {
		p.Likes = toggleID(p.Likes, userID)
	})
}

// SavePost toggles the current user's membership in the post's saved set,
// independently of LikePost.
func (s *SocialStore) SavePost(ctx context.Context, postID string) error {
	return s.togglePostSet(ctx, postID, "save_post", func(p *models.Post, userID string) {
		p.Saved = toggleID(p.Saved, userID)
	})
}

func (s *SocialStore) togglePostSet(ctx context.Context, postID, op string, apply func(*models.Post, string)) error {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfPost(postID)
	if idx < 0 {
		return nil
	}

	posts := models.ClonePosts(s.posts)
	apply(posts[idx], user.ID)
	if err := s.persist(ctx, storage.KeyPosts, posts, s.stories, s.follows); err != nil {
		return err
	}
	s.posts = posts
	observability.StoreMutations.WithLabelValues("social", op).Inc()
	return nil
}

// AddComment appends a comment to the post's sequence. Whitespace-only
// content and anonymous calls are silent no-ops; comment order is append
// order and is preserved on every read.
func (s *SocialStore) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil, nil
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfPost(postID)
	if idx < 0 {
		return nil, nil
	}

	comment := models.Comment{
		ID:         xid.New().String(),
		PostID:     postID,
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Content:    content,
		CreatedAt:  s.now(),
	}

	posts := models.ClonePosts(s.posts)
	posts[idx].Comments = append(posts[idx].Comments, comment)
	if err := s.persist(ctx, storage.KeyPosts, posts, s.stories, s.follows); err != nil {
		return nil, err
	}
	s.posts = posts
	observability.StoreMutations.WithLabelValues("social", "add_comment").Inc()
	s.logger.LogOperation(ctx, "social", "add_comment", map[string]any{"post_id": postID, "user_id": user.ID})
	cp := comment
	return &cp, nil
}

// CreateStory prepends a story expiring exactly 24 hours after creation.
// Silent no-op when anonymous.
func (s *SocialStore) CreateStory(ctx context.Context, image string) (*models.Story, error) {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := s.now()
	story := &models.Story{
		ID:         xid.New().String(),
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Image:      image,
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(models.StoryTTL),
	}

	stories := append([]*models.Story{story}, s.stories...)
	if err := s.persist(ctx, storage.KeyStories, s.posts, stories, s.follows); err != nil {
		return nil, err
	}
	s.stories = stories
	observability.StoreMutations.WithLabelValues("social", "create_story").Inc()
	s.logger.LogOperation(ctx, "social", "create_story", map[string]any{"story_id": story.ID, "user_id": user.ID})
	return story.Clone(), nil
}

// FollowUser adds the edge (current user, userID). Self-follows, duplicate
// edges, and anonymous calls are silent no-ops.
func (s *SocialStore) FollowUser(ctx context.Context, userID string) error {
	user, ok := s.users.CurrentUser()
	if !ok || user.ID == userID {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasEdge(user.ID, userID) {
		return nil
	}

	follows := append(models.CloneFollows(s.follows), models.Follow{
		FollowerID:  user.ID,
		FollowingID: userID,
	})
	if err := s.persist(ctx, storage.KeyFollows, s.posts, s.stories, follows); err != nil {
		return err
	}
	s.follows = follows
	observability.StoreMutations.WithLabelValues("social", "follow_user").Inc()
	s.logger.LogOperation(ctx, "social", "follow_user", map[string]any{"follower_id": user.ID, "following_id": userID})
	return nil
}

// UnfollowUser removes the edge (current user, userID) if it exists.
func (s *SocialStore) UnfollowUser(ctx context.Context, userID string) error {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	follows := make([]models.Follow, 0, len(s.follows))
	for _, f := range s.follows {
		if f.FollowerID == user.ID && f.FollowingID == userID {
			continue
		}
		follows = append(follows, f)
	}
	if len(follows) == len(s.follows) {
		return nil
	}

	if err := s.persist(ctx, storage.KeyFollows, s.posts, s.stories, follows); err != nil {
		return err
	}
	s.follows = follows
	observability.StoreMutations.WithLabelValues("social", "unfollow_user").Inc()
	s.logger.LogOperation(ctx, "social", "unfollow_user", map[string]any{"follower_id": user.ID, "following_id": userID})
	return nil
}

// Posts returns the full feed, newest first.
func (s *SocialStore) Posts() []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ClonePosts(s.posts)
}

// Stories returns the current story collection, newest first.
func (s *SocialStore) Stories() []*models.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneStories(s.stories)
}

// GetUserPosts returns the posts owned by userID, in the store's feed
// order.
func (s *SocialStore) GetUserPosts(userID string) []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// GetSavedPosts returns the posts the current user has saved. Empty when
// anonymous.
func (s *SocialStore) GetSavedPosts() []*models.Post {
	user, ok := s.users.CurrentUser()
	if !ok {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Post
	for _, p := range s.posts {
		if p.SavedBy(user.ID) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// IsFollowing reports whether the current user follows userID. Always
// false when anonymous, and false for the user's own id.
func (s *SocialStore) IsFollowing(userID string) bool {
	user, ok := s.users.CurrentUser()
	if !ok {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasEdge(user.ID, userID)
}

// Followers returns the edges pointing at userID: who follows them.
func (s *SocialStore) Followers(userID string) []models.Follow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Follow
	for _, f := range s.follows {
		if f.FollowingID == userID {
			out = append(out, f)
		}
	}
	return out
}

// Following returns the edges leaving userID: who they follow.
func (s *SocialStore) Following(userID string) []models.Follow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Follow
	for _, f := range s.follows {
		if f.FollowerID == userID {
			out = append(out, f)
		}
	}
	return out
}

func (s *SocialStore) indexOfPost(postID string) int {
	for i, p := range s.posts {
		if p.ID == postID {
			return i
		}
	}
	return -1
}

func (s *SocialStore) hasEdge(followerID, followingID string) bool {
	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true
		}
	}
	return false
}

// persist rewrites the full snapshot of every collection, writing the
// mutated collection's key last. The other keys are idempotent rewrites of
// unchanged state, so a failure part-way through never durably commits the
// mutation the caller is told failed. Callers hold the write lock and
// commit in-memory state only after persist succeeds, keeping each
// operation all-or-nothing across restarts too.
func (s *SocialStore) persist(ctx context.Context, mutated string, posts []*models.Post, stories []*models.Story, follows []models.Follow) error {
	records := []struct {
		key   string
		value any
	}{
		{storage.KeyPosts, posts},
		{storage.KeyStories, stories},
		{storage.KeyFollows, follows},
	}
	write := func(key string, value any) error {
		if err := storage.SetJSON(ctx, s.storage, key, value); err != nil {
			observability.SnapshotErrors.WithLabelValues(key).Inc()
			return models.NewInternalError(err)
		}
		observability.SnapshotWrites.WithLabelValues(key).Inc()
		return nil
	}
	for _, r := range records {
		if r.key == mutated {
			continue
		}
		if err := write(r.key, r.value); err != nil {
			return err
		}
	}
	for _, r := range records {
		if r.key == mutated {
			return write(r.key, r.value)
		}
	}
	return nil
}

// toggleID removes id from ids if present, otherwise appends it. The input
// slice is not modified.
func toggleID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			out = append(out, ids[i+1:]...)
			return out
		}
	}
	return append(append([]string(nil), ids...), id)
}
