package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/infrastructure/memory"
	"github.com/chirpnet/chirp-api/pkg/helpers"
)

type middlewareFixture struct {
	store    *memory.Store
	sessions *application.SessionService
	engine   *gin.Engine
	user     *entity.User
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	u := &entity.User{Name: "Alice", Username: "alice", Password: "x"}
	require.NoError(t, store.Users().Create(context.Background(), u))

	sessions := application.NewSessionService(store.Sessions(), store.Users(), time.Hour, nil)
	cookies := helpers.NewCookie("", false)

	r := gin.New()
	r.Use(Session(sessions, cookies))
	r.GET("/whoami", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return &middlewareFixture{store: store, sessions: sessions, engine: r, user: u}
}

func (f *middlewareFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareAnonymous(t *testing.T) {
	f := newMiddlewareFixture(t)

	w := f.get("/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestSessionMiddlewareInvalidTokenGetsBlankCookie(t *testing.T) {
	f := newMiddlewareFixture(t)

	w := f.get("/whoami", "bogus-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 1)
	assert.Contains(t, cookies[0], helpers.SessionCookieName+"=;")
	assert.Contains(t, cookies[0], "Max-Age=0")
}

func TestSessionMiddlewareResolvesUser(t *testing.T) {
	f := newMiddlewareFixture(t)
	sess, err := f.sessions.Create(context.Background(), f.user.ID)
	require.NoError(t, err)

	w := f.get("/whoami", sess.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
	// young session, no reissue
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestSessionMiddlewareReissuesFreshCookie(t *testing.T) {
	f := newMiddlewareFixture(t)
	sess, err := f.sessions.Create(context.Background(), f.user.ID)
	require.NoError(t, err)

	// age the session so less than half the TTL remains
	require.NoError(t, f.store.Sessions().UpdateExpiry(context.Background(), sess.ID, time.Now().Add(10*time.Minute)))

	w := f.get("/whoami", sess.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())

	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 1)
	assert.True(t, strings.HasPrefix(cookies[0], helpers.SessionCookieName+"="+sess.ID))
	assert.Contains(t, cookies[0], "HttpOnly")
	assert.Contains(t, cookies[0], "SameSite=Lax")
}

func TestRequireAuth(t *testing.T) {
	f := newMiddlewareFixture(t)

	w := f.get("/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sess, err := f.sessions.Create(context.Background(), f.user.ID)
	require.NoError(t, err)
	w = f.get("/private", sess.ID)
	assert.Equal(t, http.StatusOK, w.Code)
}
