package auth

import (
	"context"
	"sync"

	"chatterverse/internal/models"
)

// Fixture pairs a seed user with its demo password.
type Fixture struct {
	User     models.User
	Password string
}

// FixtureProvider authenticates against a closed in-memory list by plain
// string comparison. No hashing, no lockout: this is the demo backend the
// application ships with. Signed-up users join the same list.
type FixtureProvider struct {
	mu    sync.RWMutex
	users []Fixture
}

// NewFixtureProvider creates a provider preloaded with the given fixtures.
func NewFixtureProvider(fixtures ...Fixture) *FixtureProvider {
	p := &FixtureProvider{}
	for _, f := range fixtures {
		p.users = append(p.users, Fixture{User: *f.User.Clone(), Password: f.Password})
	}
	return p
}

func (p *FixtureProvider) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.users {
		if p.users[i].User.Email == email && p.users[i].Password == password {
			return p.users[i].User.Clone(), nil
		}
	}
	return nil, models.NewInvalidCredentialsError()
}

func (p *FixtureProvider) Register(_ context.Context, user *models.User, password string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].User.Email == user.Email {
			return models.NewDuplicateUserError("email")
		}
		if p.users[i].User.Username == user.Username {
			return models.NewDuplicateUserError("username")
		}
	}
	p.users = append(p.users, Fixture{User: *user.Clone(), Password: password})
	return nil
}

// Len returns how many users the provider knows about.
func (p *FixtureProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.users)
}
