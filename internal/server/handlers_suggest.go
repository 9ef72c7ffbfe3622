package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/yelinaung/expense-api/internal/gemini"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func (s *Server) handleSuggestCategory(c *gin.Context) {
	if _, ok := currentSession(c); !ok {
		return
	}

	var req suggestRequest
	if !bindJSON(c, &req) {
		return
	}

	if s.deps.Suggester == nil {
		respondError(c, gemini.ErrNotConfigured, "")
		return
	}

	suggestion, err := s.deps.Suggester.SuggestCategory(c.Request.Context(), req.Description, models.Categories())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
