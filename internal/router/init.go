package router

import (
	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/container"
	pginfra "github.com/chirpnet/chirp-api/internal/infrastructure/postgres"
	handlers "github.com/chirpnet/chirp-api/internal/interface/http"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
	"github.com/chirpnet/chirp-api/internal/router/modules"
	"github.com/chirpnet/chirp-api/pkg/helpers"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module with the router registry.
// The session middleware is installed on the whole /api group so that every
// handler can resolve the caller's identity.
//
// It returns the session service so the caller can run periodic cleanup.
func InitModules(r *Registry) *application.SessionService {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(pool)
	sessionRepo := pginfra.NewSessionRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	sessions := application.NewSessionService(sessionRepo, userRepo, cfg.SessionTTL, logger)
	auth := application.NewAuthService(userRepo, sessions, logger)
	posts := application.NewPostService(postRepo, userRepo, logger)
	comments := application.NewCommentService(commentRepo, postRepo, userRepo, logger)

	r.Use(middleware.Session(sessions, cookies))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, logger, cookies)))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(posts, logger)))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(comments, logger)))

	return sessions
}
