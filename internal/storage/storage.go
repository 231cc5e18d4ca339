// Package storage provides the durable key-value snapshot layer the stores
// persist into. Each logical collection is one key, rewritten in full on
// every mutation; there are no partial writes and no schema versioning.
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// Fixed keys for the four logical records. A missing key means "use the
// built-in seed data" for social content, or "no session" for identity.
const (
	KeyUser    = "user"
	KeyPosts   = "posts"
	KeyStories = "stories"
	KeyFollows = "follows"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable key-value snapshot store. Implementations must be safe
// for use from the stores' operation goroutine and the expiry sweep.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads key and unmarshals it into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	b, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, b)
}
