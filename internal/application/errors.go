package application

import "errors"

// Error taxonomy surfaced to handlers. All are terminal, user-correctable
// conditions; storage failures pass through untouched as internal errors.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password so
	// sign-in failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken   = errors.New("username already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	// ErrForbidden means the caller is authenticated but does not own the
	// resource being mutated.
	ErrForbidden = errors.New("not the resource owner")
)
