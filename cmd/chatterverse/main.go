// Command chatterverse runs the client core as a small interactive demo:
// it wires the identity and social stores to the configured storage
// backend, seeds the demo fixtures, and exercises a session end to end.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"chatterverse/internal/auth"
	"chatterverse/internal/config"
	"chatterverse/internal/observability"
	"chatterverse/internal/seed"
	"chatterverse/internal/storage"
	"chatterverse/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Env)
	ctx := observability.WithCorrelationID(context.Background(), observability.GenerateCorrelationID())

	st, closeStorage, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer closeStorage()

	provider := auth.NewFixtureProvider(seed.DemoFixtures()...)

	identity, err := store.NewIdentityStore(ctx, provider, st, store.WithIdentityLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create identity store: %v", err)
	}

	now := time.Now()
	social, err := store.NewSocialStore(ctx, identity, st,
		store.WithSocialLogger(logger),
		store.WithSweepInterval(cfg.SweepInterval),
		store.WithSeedData(store.SeedData{
			Posts:   seed.DemoPosts(now),
			Stories: seed.DemoStories(now),
			Follows: seed.DemoFollows(),
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create social store: %v", err)
	}
	defer social.Close()

	if err := runDemo(ctx, identity, social); err != nil {
		log.Fatalf("Demo session failed: %v", err)
	}

	fmt.Printf("Stores running (backend=%s, sweep=%s). Press Ctrl+C to exit.\n",
		cfg.StorageBackend, cfg.SweepInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("Shutting down...")
}

// openStorage builds the configured storage backend and returns it with a
// cleanup func.
func openStorage(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "file":
		st, err := storage.NewFile(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	case "redis":
		st, err := storage.OpenRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "sqlite":
		if err := os.MkdirAll(cfg.StoragePath, 0o755); err != nil {
			return nil, nil, err
		}
		st, err := storage.OpenSQLite(filepath.Join(cfg.StoragePath, "chatterverse.db"))
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// runDemo logs in as a demo user and walks through the main operations.
func runDemo(ctx context.Context, identity *store.IdentityStore, social *store.SocialStore) error {
	if user, ok := identity.CurrentUser(); ok {
		fmt.Printf("Restored session for @%s\n", user.Username)
	} else {
		user, err := identity.Login(ctx, "sarah@example.com", "password123")
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Printf("Logged in as @%s\n", user.Username)
	}

	post, err := social.CreatePost(ctx, "Hello from the demo session!", "")
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	if _, err := social.AddComment(ctx, post.ID, "First!"); err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	if err := social.LikePost(ctx, post.ID); err != nil {
		return fmt.Errorf("like post: %w", err)
	}

	story, err := social.CreateStory(ctx, "https://picsum.photos/seed/demo/1080/1920")
	if err != nil {
		return fmt.Errorf("create story: %w", err)
	}

	fmt.Printf("Feed has %d posts, %d stories (newest story expires %s)\n",
		len(social.Posts()), len(social.Stories()), story.ExpiresAt.Format(time.RFC3339))
	return nil
}
