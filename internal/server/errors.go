package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/yelinaung/expense-api/internal/gemini"
	"gitlab.com/yelinaung/expense-api/internal/logger"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

const msgInternal = "Internal server error"

// statusClientClosedRequest is the non-standard status recorded when the
// caller went away before the response was ready.
const statusClientClosedRequest = 499

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}

// respondError maps err onto a status code. notFound is the detail used
// for models.ErrNotFound, e.g. "Expense not found".
func respondError(c *gin.Context, err error, notFound string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		abortWithDetail(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, models.ErrNotFound):
		abortWithDetail(c, http.StatusNotFound, notFound)
	case errors.Is(err, models.ErrEmailTaken):
		abortWithDetail(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, models.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, gemini.ErrNotConfigured):
		abortWithDetail(c, http.StatusServiceUnavailable, "Category suggestions are not configured")
	case errors.Is(err, context.Canceled) && c.Request.Context().Err() != nil:
		logger.Log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request canceled by client")
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		logger.Log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		abortWithDetail(c, http.StatusInternalServerError, msgInternal)
	}
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
