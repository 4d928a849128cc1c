package repository

import (
	"context"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
)

// PostRepository defines storage operations for posts. GetWithAuthor and List
// return rows enriched with the author's public identity; List also returns
// the total count for the same predicate set, observed from the same snapshot
// as the page.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	GetWithAuthor(ctx context.Context, id int64) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q ListQuery) ([]*entity.Post, int64, error)
}
