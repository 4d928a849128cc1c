package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds an argon2id hash, never plaintext.
type User struct {
	ID        int64
	Name      string
	Username  string
	Password  string
	CreatedAt time.Time
}

// Author is the public identity projection joined onto posts and comments.
type Author struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PublicView strips credential material from a user.
func (u *User) PublicView() Author {
	return Author{ID: u.ID, Name: u.Name, Username: u.Username}
}
