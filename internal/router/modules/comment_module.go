package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/chirp-api/internal/container"
	handlers "github.com/chirpnet/chirp-api/internal/interface/http"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
)

// CommentModule registers the comment routes. Unlike posts, every comment
// route sits behind the session guard.
type CommentModule struct {
	Handler *handlers.CommentHandler
}

func NewCommentModule(h *handlers.CommentHandler) *CommentModule {
	return &CommentModule{Handler: h}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), middleware.AllowPrivateIP())
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser(), nil)

	authed := rg.Group("/")
	authed.Use(middleware.RequireAuth())
	{
		authed.GET("/posts/:id/comments", readLimiter, m.Handler.List)
		authed.GET("/posts/:id/comments/:commentId", readLimiter, m.Handler.Get)
		authed.POST("/posts/:id/comments", writeLimiter, m.Handler.Create)
		authed.PATCH("/posts/:id/comments/:commentId", writeLimiter, m.Handler.Update)
		authed.DELETE("/posts/:id/comments/:commentId", writeLimiter, m.Handler.Delete)
	}
}
