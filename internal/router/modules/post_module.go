package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/chirp-api/internal/container"
	handlers "github.com/chirpnet/chirp-api/internal/interface/http"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
)

type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/posts", readLimiter, m.Handler.List)
	rg.GET("/posts/:id", readLimiter, m.Handler.Get)

	authed := rg.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUser(), nil))
	{
		authed.POST("/posts", m.Handler.Create)
		authed.PATCH("/posts/:id", m.Handler.Update)
		authed.DELETE("/posts/:id", m.Handler.Delete)
	}
}
