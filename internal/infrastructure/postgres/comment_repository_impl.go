package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (content, created_at, post_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Content, c.CreatedAt, c.PostID, c.UserID)
	return row.Scan(&c.ID)
}

func (r *CommentRepository) GetByID(ctx context.Context, postID, commentID int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, content, created_at, post_id, user_id
		FROM comments
		WHERE id = $1 AND post_id = $2
	`, commentID, postID)
	if err := row.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.PostID, &c.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) GetWithAuthor(ctx context.Context, postID, commentID int64) (*entity.Comment, error) {
	c := &entity.Comment{Author: &entity.Author{}}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.content, c.created_at, c.post_id, c.user_id, u.id, u.name, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1 AND c.post_id = $2
	`, commentID, postID)
	if err := row.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.PostID, &c.UserID,
		&c.Author.ID, &c.Author.Name, &c.Author.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET content = $1
		WHERE id = $2 AND post_id = $3
	`, c.Content, c.ID, c.PostID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, postID, commentID int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $1 AND post_id = $2
	`, commentID, postID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List scopes every query to the parent post, then applies the optional
// predicates. Page and count run in one repeatable-read transaction.
func (r *CommentRepository) List(ctx context.Context, postID int64, q repository.ListQuery) ([]*entity.Comment, int64, error) {
	where := []string{"c.post_id = $1"}
	args := []any{postID}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("c.content LIKE $%d", len(args)))
	}
	if q.AuthorID != 0 {
		args = append(args, q.AuthorID)
		where = append(where, fmt.Sprintf("c.user_id = $%d", len(args)))
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var order string
	switch q.Sort {
	case repository.SortAsc:
		order = " ORDER BY c.created_at ASC"
	case repository.SortDesc:
		order = " ORDER BY c.created_at DESC"
	}

	pageSQL := `
		SELECT c.id, c.content, c.created_at, c.post_id, c.user_id, u.id, u.name, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id` +
		cond + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	countSQL := "SELECT count(*) FROM comments c" + cond

	pageArgs := append(append([]any{}, args...), q.Limit, q.Offset())

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	comments := make([]*entity.Comment, 0, q.Limit)
	for rows.Next() {
		c := &entity.Comment{Author: &entity.Author{}}
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.PostID, &c.UserID,
			&c.Author.ID, &c.Author.Name, &c.Author.Username); err != nil {
			rows.Close()
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
