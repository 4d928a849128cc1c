package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/domain/repository"
	"github.com/chirpnet/chirp-api/pkg/helpers"
)

// DefaultSessionTTL is the session lifetime when none is configured.
const DefaultSessionTTL = 60 * time.Minute

const sessionTokenBytes = 32

// SessionService creates, validates, rotates and invalidates opaque session
// tokens. Validation implements sliding expiration: when less than half the
// TTL remains, the expiry is extended and the session is marked fresh so the
// caller reissues the cookie. That bounds storage writes to roughly one per
// half-TTL per active session.
type SessionService struct {
	Sessions repository.SessionRepository
	Users    repository.UserRepository
	TTL      time.Duration
	Logger   *logrus.Logger

	now func() time.Time
}

func NewSessionService(sessions repository.SessionRepository, users repository.UserRepository, ttl time.Duration, logger *logrus.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		Sessions: sessions,
		Users:    users,
		TTL:      ttl,
		Logger:   logger,
		now:      time.Now,
	}
}

// Create mints a cryptographically random token and persists the session.
// The returned session is fresh: the caller must set the cookie.
func (s *SessionService) Create(ctx context.Context, userID int64) (*entity.Session, error) {
	token, err := helpers.NewToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}
	sess := &entity.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.TTL),
		Fresh:     true,
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", userID).Debug("session created")
	}
	return sess, nil
}

// Validate resolves a token to its session and user. Both returns are nil for
// an unknown or expired token; expired records are deleted on sight. A valid
// session past half its TTL is extended and marked fresh.
func (s *SessionService) Validate(ctx context.Context, token string) (*entity.Session, *entity.User, error) {
	if token == "" {
		return nil, nil, nil
	}
	sess, err := s.Sessions.Get(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if sess.ExpiredAt(now) {
		_ = s.Sessions.Delete(ctx, sess.ID)
		return nil, nil, nil
	}

	u, err := s.Users.GetByID(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		// Orphaned session, e.g. the user row was removed out of band.
		_ = s.Sessions.Delete(ctx, sess.ID)
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if sess.ExpiresAt.Sub(now) < s.TTL/2 {
		extended := now.Add(s.TTL)
		if err := s.Sessions.UpdateExpiry(ctx, sess.ID, extended); err != nil {
			// Losing one extension only shortens the sliding window; the
			// client cookie stays consistent with the stored expiry.
			if s.Logger != nil {
				s.Logger.WithError(err).Warn("session extension failed")
			}
		} else {
			sess.ExpiresAt = extended
			sess.Fresh = true
		}
	}

	return sess, u, nil
}

// Invalidate deletes the session record. Invalidating an unknown token is a
// no-op, not an error.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, token)
}

// DeleteExpired removes sessions past their expiry. Called periodically from
// the server janitor.
func (s *SessionService) DeleteExpired(ctx context.Context) error {
	n, err := s.Sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 && s.Logger != nil {
		s.Logger.WithField("count", n).Debug("expired sessions removed")
	}
	return nil
}
