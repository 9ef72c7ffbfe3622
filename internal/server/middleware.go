package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/yelinaung/expense-api/internal/auth"
	"gitlab.com/yelinaung/expense-api/internal/logger"
)

// requestLogger logs one line per request. User ids are hashed.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Log.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Log.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Log.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes", c.Writer.Size())
		if s, ok := auth.FromContext(c.Request.Context()); ok {
			event = event.Str("user_hash", logger.HashUserID(s.UserID))
		}
		event.Msg("HTTP request")
	}
}

// cors answers preflight requests and sets CORS headers for allowed origins.
func cors(allowOrigin func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowOrigin(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition")
			h.Set("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// bearerToken extracts the access token from the Authorization header or,
// for download links, the token query parameter.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return c.Query("token")
}

// requireAuth verifies the access token and attaches the Session to the
// request context.
func requireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWithDetail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		session, err := tokens.Parse(token)
		if err != nil {
			abortWithDetail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// currentSession returns the caller's session, answering 401 when absent.
func currentSession(c *gin.Context) (*auth.Session, bool) {
	s, ok := auth.FromContext(c.Request.Context())
	if !ok {
		abortWithDetail(c, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return s, true
}
