package repository

import (
	"context"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
)

// CommentRepository defines storage operations for comments. Every operation
// is scoped to a parent post: a comment id that exists under a different post
// is treated as not found.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, postID, commentID int64) (*entity.Comment, error)
	GetWithAuthor(ctx context.Context, postID, commentID int64) (*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, postID, commentID int64) error
	List(ctx context.Context, postID int64, q ListQuery) ([]*entity.Comment, int64, error)
}
