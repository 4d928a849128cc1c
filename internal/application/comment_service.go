package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/domain/repository"
)

// CommentService mirrors PostService for comments, with every operation
// scoped to a parent post.
type CommentService struct {
	Comments repository.CommentRepository
	Posts    repository.PostRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, users repository.UserRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Posts: posts, Users: users, Logger: logger}
}

// List returns one page of author-enriched comments under postID plus the
// total count for the same predicates.
func (s *CommentService) List(ctx context.Context, postID int64, q repository.ListQuery, authorUsername string) ([]*entity.Comment, int64, error) {
	q = q.Normalize()
	if authorUsername != "" {
		u, err := s.Users.GetByUsername(ctx, authorUsername)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrUserNotFound
		}
		if err != nil {
			return nil, 0, err
		}
		q.AuthorID = u.ID
	}
	return s.Comments.List(ctx, postID, q)
}

// Get returns a single author-enriched comment under postID.
func (s *CommentService) Get(ctx context.Context, postID, commentID int64) (*entity.Comment, error) {
	c, err := s.Comments.GetWithAuthor(ctx, postID, commentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCommentNotFound
	}
	return c, err
}

// Create stores a new comment under an existing post.
func (s *CommentService) Create(ctx context.Context, user *entity.User, postID int64, content string) (*entity.Comment, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	c := &entity.Comment{
		Content:   content,
		CreatedAt: time.Now().UTC(),
		PostID:    postID,
		UserID:    user.ID,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	author := user.PublicView()
	c.Author = &author
	return c, nil
}

// Update replaces the content of a comment owned by userID.
func (s *CommentService) Update(ctx context.Context, userID, postID, commentID int64, content string) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, postID, commentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	c.Content = content
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.Get(ctx, postID, commentID)
}

// Delete removes a comment owned by userID and returns the deleted record.
func (s *CommentService) Delete(ctx context.Context, userID, postID, commentID int64) (*entity.Comment, error) {
	c, err := s.Comments.GetWithAuthor(ctx, postID, commentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	if err := s.Comments.Delete(ctx, postID, commentID); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"comment_id": commentID, "post_id": postID, "user_id": userID}).Info("comment deleted")
	}
	return c, nil
}
