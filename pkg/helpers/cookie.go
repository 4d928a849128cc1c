package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// CookieManager writes the session cookie with consistent attributes:
// HttpOnly, SameSite=Lax, Secure in production.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// Set attaches the session cookie, expiring alongside the session itself.
func (m *CookieManager) Set(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAgeFrom(expiresAt), "/", m.Domain, m.Secure, true)
}

// Blank attaches an empty, immediately expiring cookie so the client drops an
// invalid or signed-out session token.
func (m *CookieManager) Blank(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

// Read returns the session token from the request, or "" when absent.
// An absent cookie is not an error.
func (m *CookieManager) Read(c *gin.Context) string {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
