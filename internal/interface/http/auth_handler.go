package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
	"github.com/chirpnet/chirp-api/pkg/helpers"
	"github.com/chirpnet/chirp-api/pkg/response"
	"github.com/chirpnet/chirp-api/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger, Cookies: cookies}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp POST /api/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Auth.SignUp(c.Request.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	h.Cookies.Set(c, sess.ID, sess.ExpiresAt)
	response.Success(c, http.StatusCreated, gin.H{"user": u.PublicView()}, "you have been signed up", nil)
}

// SignIn POST /api/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Auth.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	h.Cookies.Set(c, sess.ID, sess.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{"user": u.PublicView()}, "you have been signed in", nil)
}

// SignOut POST /api/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		response.Fail[any](c, http.StatusUnauthorized, "no session found", nil)
		return
	}
	if err := h.Auth.SignOut(c.Request.Context(), sess.ID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	h.Cookies.Blank(c)
	response.Success[any](c, http.StatusOK, gin.H{"signed_out": true}, "you have been signed out", nil)
}
