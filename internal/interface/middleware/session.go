package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/pkg/helpers"
	"github.com/chirpnet/chirp-api/pkg/response"
)

const (
	CtxSessionKey = "currentSession"
	CtxUserKey    = "currentUser"
)

// Session resolves the session cookie into an identity on every request.
// No cookie means anonymous, not an error. An invalid or expired token gets a
// blank cookie so the client drops it; a fresh session gets a reissued cookie
// with the extended expiry. Handlers read the result via CurrentUser and
// CurrentSession.
func Session(sessions *application.SessionService, cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Read(c)
		if token == "" {
			c.Next()
			return
		}
		sess, user, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			resp := response.Error[any](c, http.StatusInternalServerError, "session lookup failed", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		if sess == nil {
			cookies.Blank(c)
			c.Next()
			return
		}
		if sess.Fresh {
			cookies.Set(c, sess.ID, sess.ExpiresAt)
		}
		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. It must run after Session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

// CurrentSession returns the resolved session, or nil.
func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(CtxSessionKey); ok {
		if s, ok := v.(*entity.Session); ok {
			return s
		}
	}
	return nil
}
