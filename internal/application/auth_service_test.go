package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpnet/chirp-api/internal/infrastructure/memory"
	"github.com/chirpnet/chirp-api/pkg/helpers"
)

func newAuthFixture() (*memory.Store, *AuthService) {
	store := memory.New()
	sessions := NewSessionService(store.Sessions(), store.Users(), time.Hour, nil)
	return store, NewAuthService(store.Users(), sessions, nil)
}

func TestSignUpCreatesUserAndSession(t *testing.T) {
	_, auth := newAuthFixture()

	u, sess, err := auth.SignUp(context.Background(), "Alice", "alice", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, sess)
	assert.NotZero(t, u.ID)
	assert.Equal(t, u.ID, sess.UserID)
	assert.True(t, sess.Fresh)

	// the password is stored hashed, never in the clear
	assert.NotEqual(t, "s3cret", u.Password)
	assert.True(t, helpers.VerifyPassword(u.Password, "s3cret"))
}

func TestSignUpDuplicateUsername(t *testing.T) {
	_, auth := newAuthFixture()

	_, _, err := auth.SignUp(context.Background(), "Alice", "alice", "s3cret")
	require.NoError(t, err)

	_, _, err = auth.SignUp(context.Background(), "Imposter", "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignInVerifiesCredentials(t *testing.T) {
	_, auth := newAuthFixture()
	_, _, err := auth.SignUp(context.Background(), "Alice", "alice", "s3cret")
	require.NoError(t, err)

	u, sess, err := auth.SignIn(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, sess.ID)
}

func TestSignInWrongPassword(t *testing.T) {
	_, auth := newAuthFixture()
	_, _, err := auth.SignUp(context.Background(), "Alice", "alice", "s3cret")
	require.NoError(t, err)

	_, _, err = auth.SignIn(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInUnknownUsernameCollapsesToSameError(t *testing.T) {
	_, auth := newAuthFixture()

	_, _, err := auth.SignIn(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutInvalidatesSession(t *testing.T) {
	_, auth := newAuthFixture()
	_, sess, err := auth.SignUp(context.Background(), "Alice", "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(context.Background(), sess.ID))

	got, _, err := auth.Sessions.Validate(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
