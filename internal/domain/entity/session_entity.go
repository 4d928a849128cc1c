package entity

import "time"

// Session is an opaque server-side session record. The ID doubles as the
// cookie value; it carries no claims and must be looked up on every request.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time

	// Fresh is transient: set when the session was just created or its expiry
	// was extended, signalling that the cookie must be reissued. Not persisted.
	Fresh bool
}

// ExpiredAt reports whether the session is past its lifetime at the given
// instant. A session is valid up to and including ExpiresAt.
func (s *Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
