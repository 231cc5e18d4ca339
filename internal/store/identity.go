// Package store contains the two state containers the application is built
// around: the identity store (session) and the social store (content).
// Consumers read snapshots and mutate state only through the operations
// exposed here.
package store

import (
	"context"
	"fmt"
	"sync"

	"chatterverse/internal/auth"
	"chatterverse/internal/models"
	"chatterverse/internal/observability"
	"chatterverse/internal/storage"
	"chatterverse/internal/validation"

	"github.com/rs/xid"
)

// IdentityStore holds at most one authenticated user and the operations
// that create or change it. Every state change writes the full user record
// (or its absence) to durable storage under a fixed key, so a later process
// start restores the session during construction.
type IdentityStore struct {
	mu       sync.RWMutex
	provider auth.Provider
	storage  storage.Store
	logger   *observability.Logger
	user     *models.User
}

// IdentityOption configures an IdentityStore.
type IdentityOption func(*IdentityStore)

// WithIdentityLogger sets the store's logger.
func WithIdentityLogger(l *observability.Logger) IdentityOption {
	return func(s *IdentityStore) { s.logger = l }
}

// NewIdentityStore creates the store and restores a persisted session if
// one exists.
func NewIdentityStore(ctx context.Context, provider auth.Provider, st storage.Store, opts ...IdentityOption) (*IdentityStore, error) {
	s := &IdentityStore{
		provider: provider,
		storage:  st,
		logger:   observability.NewLogger(""),
	}
	for _, opt := range opts {
		opt(s)
	}

	var user models.User
	found, err := storage.GetJSON(ctx, st, storage.KeyUser, &user)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if found {
		s.user = &user
		s.logger.LogOperation(ctx, "identity", "restore", map[string]any{"user_id": user.ID})
	}
	return s, nil
}

// SignupInput carries the fields collected by the signup form. The view
// layer validates them before calling Signup.
type SignupInput struct {
	Email    string
	Password string
	Username string
	Name     string
}

// Login authenticates against the credential provider and makes the
// matching user current. The returned user never carries secret material.
func (s *IdentityStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.LogOperationError(ctx, "identity", "login", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistUser(ctx, user); err != nil {
		return nil, err
	}
	s.user = user
	observability.StoreMutations.WithLabelValues("identity", "login").Inc()
	s.logger.LogOperation(ctx, "identity", "login", map[string]any{"user_id": user.ID})
	return user.Clone(), nil
}

// Signup registers a new account with zero social counters and an empty
// bio, then makes it current. Fails with a VALIDATION_ERROR for malformed
// fields and a DUPLICATE_USER error when the email or username is taken.
//
// The credential provider is externally-owned state: once Register
// succeeds the account exists there even if persisting the session fails
// afterwards. In that case Signup reports the failure and the store stays
// anonymous, but the account remains reachable through Login.
func (s *IdentityStore) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validateSignup(in); err != nil {
		s.logger.LogOperationError(ctx, "identity", "signup", err)
		return nil, err
	}

	user := &models.User{
		ID:       xid.New().String(),
		Username: in.Username,
		Name:     in.Name,
		Email:    in.Email,
		Bio:      "",
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", in.Username),
	}

	if err := s.provider.Register(ctx, user, in.Password); err != nil {
		s.logger.LogOperationError(ctx, "identity", "signup", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistUser(ctx, user); err != nil {
		return nil, err
	}
	s.user = user
	observability.StoreMutations.WithLabelValues("identity", "signup").Inc()
	s.logger.LogOperation(ctx, "identity", "signup", map[string]any{"user_id": user.ID})
	return user.Clone(), nil
}

func validateSignup(in SignupInput) error {
	checks := []error{
		validation.ValidateEmail(in.Email),
		validation.ValidatePassword(in.Password),
		validation.ValidateUsername(in.Username),
		validation.ValidateName(in.Name),
	}
	for _, err := range checks {
		if err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

// Logout clears the current user and removes the persisted session record.
// Logging out while anonymous is fine.
func (s *IdentityStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(ctx, storage.KeyUser); err != nil {
		observability.SnapshotErrors.WithLabelValues(storage.KeyUser).Inc()
		return models.NewInternalError(err)
	}
	s.user = nil
	observability.StoreMutations.WithLabelValues("identity", "logout").Inc()
	s.logger.LogOperation(ctx, "identity", "logout", nil)
	return nil
}

// UpdateProfileInput carries a partial profile edit. Nil fields are left
// unchanged. The store does not re-validate merged fields; validation
// happens in the view layer before the call.
type UpdateProfileInput struct {
	Username *string
	Name     *string
	Email    *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile merges the partial fields into the current user and
// persists the result. A silent no-op when nobody is logged in.
func (s *IdentityStore) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}

	updated := s.user.Clone()
	if in.Username != nil {
		updated.Username = *in.Username
	}
	if in.Name != nil {
		updated.Name = *in.Name
	}
	if in.Email != nil {
		updated.Email = *in.Email
	}
	if in.Bio != nil {
		updated.Bio = *in.Bio
	}
	if in.Avatar != nil {
		updated.Avatar = *in.Avatar
	}

	if err := s.persistUser(ctx, updated); err != nil {
		return nil, err
	}
	s.user = updated
	observability.StoreMutations.WithLabelValues("identity", "update_profile").Inc()
	s.logger.LogOperation(ctx, "identity", "update_profile", map[string]any{"user_id": updated.ID})
	return updated.Clone(), nil
}

// CurrentUser returns a snapshot of the authenticated user, or false when
// anonymous.
func (s *IdentityStore) CurrentUser() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return s.user.Clone(), true
}

// IsAuthenticated reports whether a user is logged in.
func (s *IdentityStore) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// persistUser writes the full user record under the fixed session key.
// Callers hold the write lock; state is only committed after this succeeds.
func (s *IdentityStore) persistUser(ctx context.Context, user *models.User) error {
	if err := storage.SetJSON(ctx, s.storage, storage.KeyUser, user); err != nil {
		observability.SnapshotErrors.WithLabelValues(storage.KeyUser).Inc()
		s.logger.LogOperationError(ctx, "identity", "persist", err)
		return models.NewInternalError(err)
	}
	observability.SnapshotWrites.WithLabelValues(storage.KeyUser).Inc()
	return nil
}
