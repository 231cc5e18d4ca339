package auth

import (
	"context"
	"sync"

	"chatterverse/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// BcryptProvider stores bcrypt password hashes instead of plaintext. It is
// the shape a real credential backend takes behind the same Provider
// interface; swap it in for FixtureProvider when the demo list goes away.
type BcryptProvider struct {
	mu    sync.RWMutex
	users []bcryptRecord
}

type bcryptRecord struct {
	user models.User
	hash []byte
}

// NewBcryptProvider creates an empty hashed-credential provider.
func NewBcryptProvider() *BcryptProvider {
	return &BcryptProvider{}
}

func (p *BcryptProvider) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.users {
		if p.users[i].user.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(p.users[i].hash, []byte(password)); err != nil {
			return nil, models.NewInvalidCredentialsError()
		}
		return p.users[i].user.Clone(), nil
	}
	return nil, models.NewInvalidCredentialsError()
}

func (p *BcryptProvider) Register(_ context.Context, user *models.User, password string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].user.Email == user.Email {
			return models.NewDuplicateUserError("email")
		}
		if p.users[i].user.Username == user.Username {
			return models.NewDuplicateUserError("username")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	p.users = append(p.users, bcryptRecord{user: *user.Clone(), hash: hash})
	return nil
}
