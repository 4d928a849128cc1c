package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/domain/repository"
)

// Store is an in-memory implementation of every repository interface, used by
// tests and local development. A single RWMutex guards all maps, so a listing
// reads its page and count from one consistent snapshot.
type Store struct {
	mu            sync.RWMutex
	users         map[int64]entity.User
	usersByName   map[string]int64
	sessions      map[string]entity.Session
	posts         map[int64]entity.Post
	comments      map[int64]entity.Comment
	nextUserID    int64
	nextPostID    int64
	nextCommentID int64
}

func New() *Store {
	return &Store{
		users:       make(map[int64]entity.User),
		usersByName: make(map[string]int64),
		sessions:    make(map[string]entity.Session),
		posts:       make(map[int64]entity.Post),
		comments:    make(map[int64]entity.Comment),
	}
}

func (s *Store) Users() repository.UserRepository       { return userRepo{s} }
func (s *Store) Sessions() repository.SessionRepository { return sessionRepo{s} }
func (s *Store) Posts() repository.PostRepository       { return postRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }

// === Users ===

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.usersByName[u.Username]; exists {
		return repository.ErrConflict
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.s.users[u.ID] = *u
	r.s.usersByName[u.Username] = u.ID
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

// === Sessions ===

type sessionRepo struct{ s *Store }

func (r sessionRepo) Create(ctx context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *sess
	stored.Fresh = false
	r.s.sessions[sess.ID] = stored
	return nil
}

func (r sessionRepo) Get(ctx context.Context, id string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sess, nil
}

func (r sessionRepo) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	sess.ExpiresAt = expiresAt
	r.s.sessions[id] = sess
	return nil
}

func (r sessionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}

// === Posts ===

type postRepo struct{ s *Store }

func (r postRepo) Create(ctx context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextPostID++
	p.ID = r.s.nextPostID
	stored := *p
	stored.Author = nil
	r.s.posts[p.ID] = stored
	return nil
}

func (r postRepo) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r postRepo) GetWithAuthor(ctx context.Context, id int64) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.s.attachPostAuthor(&p)
	return &p, nil
}

func (r postRepo) Update(ctx context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Content = p.Content
	r.s.posts[p.ID] = stored
	return nil
}

func (r postRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	// cascade, mirroring the FK constraint
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r postRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Post, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]entity.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		if q.Search != "" && !strings.Contains(p.Content, q.Search) {
			continue
		}
		if q.AuthorID != 0 && p.UserID != q.AuthorID {
			continue
		}
		matched = append(matched, p)
	}
	sortByCreatedAt(matched, q.Sort, func(p entity.Post) (time.Time, int64) { return p.CreatedAt, p.ID })

	total := int64(len(matched))
	page := paginate(matched, q)
	out := make([]*entity.Post, 0, len(page))
	for i := range page {
		p := page[i]
		r.s.attachPostAuthor(&p)
		out = append(out, &p)
	}
	return out, total, nil
}

// === Comments ===

type commentRepo struct{ s *Store }

func (r commentRepo) Create(ctx context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCommentID++
	c.ID = r.s.nextCommentID
	stored := *c
	stored.Author = nil
	r.s.comments[c.ID] = stored
	return nil
}

func (r commentRepo) GetByID(ctx context.Context, postID, commentID int64) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r commentRepo) GetWithAuthor(ctx context.Context, postID, commentID int64) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, repository.ErrNotFound
	}
	r.s.attachCommentAuthor(&c)
	return &c, nil
}

func (r commentRepo) Update(ctx context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.comments[c.ID]
	if !ok || stored.PostID != c.PostID {
		return repository.ErrNotFound
	}
	stored.Content = c.Content
	r.s.comments[c.ID] = stored
	return nil
}

func (r commentRepo) Delete(ctx context.Context, postID, commentID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID {
		return repository.ErrNotFound
	}
	delete(r.s.comments, commentID)
	return nil
}

func (r commentRepo) List(ctx context.Context, postID int64, q repository.ListQuery) ([]*entity.Comment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		if q.Search != "" && !strings.Contains(c.Content, q.Search) {
			continue
		}
		if q.AuthorID != 0 && c.UserID != q.AuthorID {
			continue
		}
		matched = append(matched, c)
	}
	sortByCreatedAt(matched, q.Sort, func(c entity.Comment) (time.Time, int64) { return c.CreatedAt, c.ID })

	total := int64(len(matched))
	page := paginate(matched, q)
	out := make([]*entity.Comment, 0, len(page))
	for i := range page {
		c := page[i]
		r.s.attachCommentAuthor(&c)
		out = append(out, &c)
	}
	return out, total, nil
}

// === helpers ===

func (s *Store) attachPostAuthor(p *entity.Post) {
	if u, ok := s.users[p.UserID]; ok {
		author := u.PublicView()
		p.Author = &author
	}
}

func (s *Store) attachCommentAuthor(c *entity.Comment) {
	if u, ok := s.users[c.UserID]; ok {
		author := u.PublicView()
		c.Author = &author
	}
}

// sortByCreatedAt orders by creation time with ID as tie-breaker. SortNone
// falls back to ID order purely for determinism; callers must treat it as
// unordered.
func sortByCreatedAt[T any](items []T, order repository.SortOrder, key func(T) (time.Time, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		switch order {
		case repository.SortAsc:
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
		case repository.SortDesc:
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
		}
		return idi < idj
	})
}

func paginate[T any](items []T, q repository.ListQuery) []T {
	start := q.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
