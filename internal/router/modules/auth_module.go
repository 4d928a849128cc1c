package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/chirp-api/internal/container"
	handlers "github.com/chirpnet/chirp-api/internal/interface/http"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints are brute-force targets, keep the limits tight
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/sign-up", signUpLimiter, m.Handler.SignUp)
	rg.POST("/sign-in", signInLimiter, m.Handler.SignIn)
	rg.POST("/sign-out", m.Handler.SignOut)
}
