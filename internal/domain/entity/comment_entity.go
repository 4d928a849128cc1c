package entity

import "time"

// Comment belongs to exactly one post and is owned by its author.
type Comment struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	PostID    int64
	UserID    int64

	// Author is populated on enriched reads (joins), nil otherwise.
	Author *Author
}
