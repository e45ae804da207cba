package store

import (
	"context"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/errors"
)

// CreateUser stores a new user account.
// Returns ErrAlreadyExists if the email is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return s.Users.Create(ctx, user.ID, user)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.Users.Get(ctx, id)
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "email", email)
}

// UpdateUser replaces a stored user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	return s.Users.Update(ctx, user.ID, user)
}

// CountUsers returns the number of user accounts.
// Used to decide whether first-run setup is still open.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// CreateSession stores a new refresh session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	return s.Sessions.Create(ctx, session.ID, session)
}

// GetSessionByRefreshHash looks up a session by its hashed refresh token.
func (s *Store) GetSessionByRefreshHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return s.Sessions.GetByIndex(ctx, "refresh", tokenHash)
}

// UpdateSession replaces a stored session.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	return s.Sessions.Update(ctx, session.ID, session)
}

// DeleteSession removes a session. Idempotent.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.Sessions.Delete(ctx, id)
}

// DeleteExpiredSessions removes all sessions past their expiry and returns
// how many were deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	sessions, err := s.Sessions.List(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, sess := range sessions {
		if !sess.IsExpired() {
			continue
		}
		if err := s.Sessions.Delete(ctx, sess.ID); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				continue
			}
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
