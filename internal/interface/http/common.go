package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirpnet/chirp-api/internal/application"
	"github.com/chirpnet/chirp-api/internal/domain/entity"
	"github.com/chirpnet/chirp-api/internal/domain/repository"
	"github.com/chirpnet/chirp-api/pkg/response"
)

// listQueryRequest is the shared query-string surface of the listing engine.
type listQueryRequest struct {
	Sort     string `form:"sort" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
	Username string `form:"username"`
}

func (r listQueryRequest) toQuery() repository.ListQuery {
	return repository.ListQuery{
		Sort:   repository.SortOrder(r.Sort),
		Search: r.Search,
		Page:   r.Page,
		Limit:  r.Limit,
	}.Normalize()
}

type postResponse struct {
	ID      int64          `json:"id"`
	Content string         `json:"content"`
	Date    time.Time      `json:"date"`
	Author  *entity.Author `json:"author,omitempty"`
}

func newPostResponse(p *entity.Post) postResponse {
	return postResponse{ID: p.ID, Content: p.Content, Date: p.CreatedAt, Author: p.Author}
}

type commentResponse struct {
	ID      int64          `json:"id"`
	Content string         `json:"content"`
	Date    time.Time      `json:"date"`
	PostID  int64          `json:"postId"`
	Author  *entity.Author `json:"author,omitempty"`
}

func newCommentResponse(c *entity.Comment) commentResponse {
	return commentResponse{ID: c.ID, Content: c.Content, Date: c.CreatedAt, PostID: c.PostID, Author: c.Author}
}

func listMeta(q repository.ListQuery, total int64) gin.H {
	return gin.H{"page": q.Page, "limit": q.Limit, "total": total}
}

// pathID parses a positive integer path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.Fail[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// writeServiceError maps the application error taxonomy onto status codes.
// Anything outside the taxonomy is an opaque internal error.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Fail[any](c, http.StatusUnauthorized, "invalid username or password", nil)
	case errors.Is(err, application.ErrUsernameTaken):
		response.Fail[any](c, http.StatusConflict, "username already taken", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Fail[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrPostNotFound):
		response.Fail[any](c, http.StatusNotFound, "post not found", nil)
	case errors.Is(err, application.ErrCommentNotFound):
		response.Fail[any](c, http.StatusNotFound, "comment not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Fail[any](c, http.StatusForbidden, "you do not own this resource", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Fail[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
