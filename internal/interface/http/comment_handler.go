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

// CommentHandler serves the comment routes nested under a post.
type CommentHandler struct {
	Comments *application.CommentService
	Logger   *logrus.Logger
}

func NewCommentHandler(comments *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger}
}

type commentContentRequest struct {
	Content string `json:"content" binding:"required,max=120"`
}

// List GET /api/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req listQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	q := req.toQuery()
	comments, total, err := h.Comments.List(c.Request.Context(), postID, q, req.Username)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	data := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		data = append(data, newCommentResponse(cm))
	}
	response.Success(c, http.StatusOK, data, "comments", listMeta(q, total))
}

// Get GET /api/posts/:id/comments/:commentId
func (h *CommentHandler) Get(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	cm, err := h.Comments.Get(c.Request.Context(), postID, commentID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCommentResponse(cm), "comment", nil)
}

// Create POST /api/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user := middleware.CurrentUser(c)
	cm, err := h.Comments.Create(c.Request.Context(), user, postID, req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newCommentResponse(cm), "comment created", nil)
}

// Update PATCH /api/posts/:id/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user := middleware.CurrentUser(c)
	cm, err := h.Comments.Update(c.Request.Context(), user.ID, postID, commentID, req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCommentResponse(cm), "comment updated", nil)
}

// Delete DELETE /api/posts/:id/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	cm, err := h.Comments.Delete(c.Request.Context(), user.ID, postID, commentID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCommentResponse(cm), "comment deleted", nil)
}
