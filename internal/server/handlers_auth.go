package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"gitlab.com/yelinaung/expense-api/internal/auth"
	"gitlab.com/yelinaung/expense-api/internal/logger"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func validateRegistration(req *registerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		return models.NewValidationError("name", "is required")
	}
	if req.Email == "" {
		return models.NewValidationError("email", "is required")
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return models.NewValidationError("email", "must be a valid email address")
	}
	return auth.ValidatePassword(req.Password)
}

func (s *Server) issue(c *gin.Context, status int, user *models.User) {
	token, err := s.deps.Tokens.Issue(user)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(status, tokenResponse{Token: token, User: newUserResponse(user)})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validateRegistration(&req); err != nil {
		respondError(c, err, "")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err, "")
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := s.deps.Users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err, "")
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(user.ID)).
		Msg("User registered")

	s.issue(c, http.StatusOK, user)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := s.deps.Users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, models.ErrNotFound) {
		logger.Log.Debug().
			Str("email_hash", logger.HashEmail(req.Email)).
			Msg("Login failed: unknown account")
		respondError(c, auth.RejectUnknownAccount(req.Password), "")
		return
	}
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(c, err, "")
		return
	}

	s.issue(c, http.StatusOK, user)
}

func (s *Server) handleMe(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	user, err := s.deps.Users.GetByID(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
