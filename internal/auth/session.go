package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated caller of a request. It is passed explicitly
// through handlers and contexts.
type Session struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
