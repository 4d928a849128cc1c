package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/infrastructure/memory"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
	"github.com/chirpnet/chirp-api/pkg/helpers"
	"github.com/chirpnet/chirp-api/pkg/validation"
)

type apiFixture struct {
	engine *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := memory.New()
	cookies := helpers.NewCookie("", false)
	sessions := application.NewSessionService(store.Sessions(), store.Users(), time.Hour, nil)
	auth := application.NewAuthService(store.Users(), sessions, nil)
	posts := application.NewPostService(store.Posts(), store.Users(), nil)
	comments := application.NewCommentService(store.Comments(), store.Posts(), store.Users(), nil)

	authH := NewAuthHandler(auth, nil, cookies)
	postH := NewPostHandler(posts, nil)
	commentH := NewCommentHandler(comments, nil)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Session(sessions, cookies))

	api.POST("/sign-up", authH.SignUp)
	api.POST("/sign-in", authH.SignIn)
	api.POST("/sign-out", authH.SignOut)

	api.GET("/posts", postH.List)
	api.GET("/posts/:id", postH.Get)

	authed := api.Group("/")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/posts", postH.Create)
		authed.PATCH("/posts/:id", postH.Update)
		authed.DELETE("/posts/:id", postH.Delete)
		authed.GET("/posts/:id/comments", commentH.List)
		authed.GET("/posts/:id/comments/:commentId", commentH.Get)
		authed.POST("/posts/:id/comments", commentH.Create)
		authed.PATCH("/posts/:id/comments/:commentId", commentH.Update)
		authed.DELETE("/posts/:id/comments/:commentId", commentH.Delete)
	}

	return &apiFixture{engine: r}
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	} `json:"meta"`
}

func (f *apiFixture) do(t *testing.T, method, path, sessionToken string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: sessionToken})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func sessionTokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	res := http.Response{Header: w.Header()}
	for _, c := range res.Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func (f *apiFixture) signUp(t *testing.T, name, username, password string) string {
	t.Helper()
	w, env := f.do(t, http.MethodPost, "/api/sign-up", "", gin.H{
		"name": name, "username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	return sessionTokenFrom(t, w)
}

func (f *apiFixture) createPost(t *testing.T, token, content string) int64 {
	t.Helper()
	w, env := f.do(t, http.MethodPost, "/api/posts", token, gin.H{"content": content})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var p struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p.ID
}

func TestSignUpSignInSignOutFlow(t *testing.T) {
	f := newAPIFixture(t)

	token := f.signUp(t, "Alice", "alice", "s3cret")
	assert.NotEmpty(t, token)

	// duplicate username
	w, _ := f.do(t, http.MethodPost, "/api/sign-up", "", gin.H{
		"name": "Imposter", "username": "alice", "password": "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// wrong password and unknown user collapse to the same 401
	w, _ = f.do(t, http.MethodPost, "/api/sign-in", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = f.do(t, http.MethodPost, "/api/sign-in", "", gin.H{"username": "nobody", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/sign-in", "", gin.H{"username": "alice", "password": "s3cret"})
	assert.Equal(t, http.StatusOK, w.Code)
	signedIn := sessionTokenFrom(t, w)

	// sign-out invalidates and blanks the cookie
	w, _ = f.do(t, http.MethodPost, "/api/sign-out", signedIn, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sessionTokenFrom(t, w))

	w, _ = f.do(t, http.MethodPost, "/api/posts", signedIn, gin.H{"content": "should fail"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// signing out without a session
	w, _ = f.do(t, http.MethodPost, "/api/sign-out", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignUpValidation(t *testing.T) {
	f := newAPIFixture(t)

	w, env := f.do(t, http.MethodPost, "/api/sign-up", "", gin.H{"name": "No Password", "username": "nopass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestPostOwnershipOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.signUp(t, "Alice", "alice", "s3cret")
	bob := f.signUp(t, "Bob", "bob", "s3cret")

	postID := f.createPost(t, alice, "alice's post")
	path := fmt.Sprintf("/api/posts/%d", postID)

	// anyone can read
	w, env := f.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Content string `json:"content"`
		Author  struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "alice's post", got.Content)
	assert.Equal(t, "alice", got.Author.Username)

	// non-owner mutations are forbidden, missing posts are 404 first
	w, _ = f.do(t, http.MethodPatch, path, bob, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = f.do(t, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = f.do(t, http.MethodPatch, "/api/posts/9999", bob, gin.H{"content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// owner succeeds
	w, env = f.do(t, http.MethodPatch, path, alice, gin.H{"content": "edited"})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "edited", got.Content)

	w, _ = f.do(t, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostListingOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.signUp(t, "Alice", "alice", "s3cret")
	bob := f.signUp(t, "Bob", "bob", "s3cret")

	f.createPost(t, alice, "coffee in the morning")
	f.createPost(t, alice, "deploy on friday")
	f.createPost(t, bob, "coffee at night")

	w, env := f.do(t, http.MethodGet, "/api/posts?search=coffee", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), env.Meta.Total)

	w, env = f.do(t, http.MethodGet, "/api/posts?search=coffee&username=bob", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.Meta.Total)

	w, _ = f.do(t, http.MethodGet, "/api/posts?username=nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodGet, "/api/posts?sort=newest", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = f.do(t, http.MethodGet, "/api/posts?page=2&limit=2", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	var page []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 1)
}

func TestCommentFlowOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.signUp(t, "Alice", "alice", "s3cret")
	bob := f.signUp(t, "Bob", "bob", "s3cret")

	postID := f.createPost(t, alice, "discuss")
	base := fmt.Sprintf("/api/posts/%d/comments", postID)

	// commenting on a missing post
	w, _ := f.do(t, http.MethodPost, "/api/posts/9999/comments", bob, gin.H{"content": "void"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := f.do(t, http.MethodPost, base, bob, gin.H{"content": "first!"})
	require.Equal(t, http.StatusCreated, w.Code)
	var c struct {
		ID     int64 `json:"id"`
		PostID int64 `json:"postId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, postID, c.PostID)

	cPath := fmt.Sprintf("%s/%d", base, c.ID)

	// the post owner still cannot edit someone else's comment
	w, _ = f.do(t, http.MethodPatch, cPath, alice, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// comment reads are session-gated
	w, _ = f.do(t, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = f.do(t, http.MethodGet, base, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.Meta.Total)

	w, _ = f.do(t, http.MethodDelete, cPath, bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodGet, cPath, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
