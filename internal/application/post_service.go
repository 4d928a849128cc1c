package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/domain/repository"
)

// PostService implements post CRUD and the post listing engine entry point.
// Mutations enforce ownership after confirming existence, so a missing post is
// reported as not found even to a non-owner.
type PostService struct {
	Posts  repository.PostRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

// List returns one page of author-enriched posts plus the total count for the
// same predicate set. An author username that resolves to no user fails with
// ErrUserNotFound rather than returning an empty page.
func (s *PostService) List(ctx context.Context, q repository.ListQuery, authorUsername string) ([]*entity.Post, int64, error) {
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
	return s.Posts.List(ctx, q)
}

// Get returns a single author-enriched post.
func (s *PostService) Get(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := s.Posts.GetWithAuthor(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

// Create stores a new post owned by the acting user.
func (s *PostService) Create(ctx context.Context, user *entity.User, content string) (*entity.Post, error) {
	p := &entity.Post{
		Content:   content,
		CreatedAt: time.Now().UTC(),
		UserID:    user.ID,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	author := user.PublicView()
	p.Author = &author
	return p, nil
}

// Update replaces the content of a post owned by userID.
func (s *PostService) Update(ctx context.Context, userID, postID int64, content string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	p.Content = content
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, postID)
}

// Delete removes a post owned by userID and returns the deleted record.
// Dependent comments are removed with it.
func (s *PostService) Delete(ctx context.Context, userID, postID int64) (*entity.Post, error) {
	p, err := s.Posts.GetWithAuthor(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": postID, "user_id": userID}).Info("post deleted")
	}
	return p, nil
}
