package repository

import (
	"context"
	"time"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
)

// SessionRepository persists opaque session tokens. Delete is idempotent:
// removing an absent token is not an error.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
