package entity

import "time"

// Post is a short text update owned by its author. Deleting a post cascades
// to its comments.
type Post struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	UserID    int64

	// Author is populated on enriched reads (joins), nil otherwise.
	Author *Author
}
