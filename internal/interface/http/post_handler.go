package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/interface/middleware"
	"github.com/chirpnet/chirp-api/pkg/response"
	"github.com/chirpnet/chirp-api/pkg/validation"
)

type PostHandler struct {
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(posts *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Logger: logger}
}

type postContentRequest struct {
	Content string `json:"content" binding:"required,max=240"`
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	var req listQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	q := req.toQuery()
	posts, total, err := h.Posts.List(c.Request.Context(), q, req.Username)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	data := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		data = append(data, newPostResponse(p))
	}
	response.Success(c, http.StatusOK, data, "posts", listMeta(q, total))
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Posts.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newPostResponse(p), "post", nil)
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user := middleware.CurrentUser(c)
	p, err := h.Posts.Create(c.Request.Context(), user, req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newPostResponse(p), "post created", nil)
}

// Update PATCH /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req postContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user := middleware.CurrentUser(c)
	p, err := h.Posts.Update(c.Request.Context(), user.ID, id, req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newPostResponse(p), "post updated", nil)
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	p, err := h.Posts.Delete(c.Request.Context(), user.ID, id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newPostResponse(p), "post deleted", nil)
}
