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

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (content, created_at, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, p.Content, p.CreatedAt, p.UserID)
	return row.Scan(&p.ID)
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p := &entity.Post{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, content, created_at, user_id
		FROM posts
		WHERE id = $1
	`, id)
	if err := row.Scan(&p.ID, &p.Content, &p.CreatedAt, &p.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) GetWithAuthor(ctx context.Context, id int64) (*entity.Post, error) {
	p := &entity.Post{Author: &entity.Author{}}
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.content, p.created_at, p.user_id, u.id, u.name, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id)
	if err := row.Scan(&p.ID, &p.Content, &p.CreatedAt, &p.UserID,
		&p.Author.ID, &p.Author.Name, &p.Author.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET content = $1
		WHERE id = $2
	`, p.Content, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the post; dependent comments go with it via the FK cascade.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List runs the page query and the count query inside one repeatable-read
// transaction so both observe the same snapshot.
func (r *PostRepository) List(ctx context.Context, q repository.ListQuery) ([]*entity.Post, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("p.content LIKE $%d", len(args)))
	}
	if q.AuthorID != 0 {
		args = append(args, q.AuthorID)
		where = append(where, fmt.Sprintf("p.user_id = $%d", len(args)))
	}

	var cond string
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var order string
	switch q.Sort {
	case repository.SortAsc:
		order = " ORDER BY p.created_at ASC"
	case repository.SortDesc:
		order = " ORDER BY p.created_at DESC"
	}

	pageSQL := `
		SELECT p.id, p.content, p.created_at, p.user_id, u.id, u.name, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id` +
		cond + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	countSQL := "SELECT count(*) FROM posts p" + cond

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
	posts := make([]*entity.Post, 0, q.Limit)
	for rows.Next() {
		p := &entity.Post{Author: &entity.Author{}}
		if err := rows.Scan(&p.ID, &p.Content, &p.CreatedAt, &p.UserID,
			&p.Author.ID, &p.Author.Name, &p.Author.Username); err != nil {
			rows.Close()
			return nil, 0, err
		}
		posts = append(posts, p)
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
	return posts, total, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
