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

// AuthService handles registration, credential verification and sign-out.
type AuthService struct {
	Users    repository.UserRepository
	Sessions *SessionService
	Logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, sessions *SessionService, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Logger: logger}
}

// SignUp registers a new user and opens a session for it.
func (s *AuthService) SignUp(ctx context.Context, name, username, password string) (*entity.User, *entity.Session, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}
	u := &entity.User{
		Name:      name,
		Username:  username,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}
	sess, err := s.Sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u, sess, nil
}

// SignIn verifies the credentials and opens a session. Unknown username and
// wrong password collapse into the same error.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*entity.User, *entity.Session, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !helpers.VerifyPassword(u.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}
	sess, err := s.Sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// SignOut invalidates the given session token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.Sessions.Invalidate(ctx, token)
}
