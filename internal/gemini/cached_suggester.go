package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gitlab.com/yelinaung/expense-api/internal/models"
)

// DefaultSuggestionTTL is how long a suggestion is reused for the same
// description.
const DefaultSuggestionTTL = time.Hour

const maxCleanupInterval = 5 * time.Minute

// Suggester proposes a category for an expense description.
type Suggester interface {
	SuggestCategory(ctx context.Context, description string, categories []models.Category) (*CategorySuggestion, error)
}

type cachedSuggestion struct {
	suggestion CategorySuggestion
	expiresAt  time.Time
}

type inFlightCall struct {
	done   chan struct{}
	result *CategorySuggestion
	err    error
}

// CachedSuggester wraps a Suggester with in-memory TTL caching. Entries are
// keyed by the normalized description and category set. Concurrent callers
// asking for the same key share one upstream call.
type CachedSuggester struct {
	inner Suggester
	ttl   time.Duration

	mu          sync.RWMutex
	entries     map[string]cachedSuggestion
	inFlight    map[string]*inFlightCall
	lastCleanup time.Time
}

// NewCachedSuggester returns a Suggester that caches successful answers.
func NewCachedSuggester(inner Suggester, ttl time.Duration) *CachedSuggester {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &CachedSuggester{
		inner:    inner,
		ttl:      ttl,
		entries:  make(map[string]cachedSuggestion),
		inFlight: make(map[string]*inFlightCall),
	}
}

func cacheKey(description string, categories []models.Category) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.Join(strings.Fields(description), " ")))
	for _, c := range categories {
		b.WriteByte('|')
		b.WriteString(string(c))
	}
	return b.String()
}

// SuggestCategory returns a cached suggestion when one is fresh, otherwise
// asks the wrapped Suggester. Errors are never cached.
func (s *CachedSuggester) SuggestCategory(
	ctx context.Context,
	description string,
	categories []models.Category,
) (*CategorySuggestion, error) {
	if s.inner == nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(description) == "" {
		return nil, models.NewValidationError("description", "is required")
	}

	key := cacheKey(description, categories)
	now := time.Now()

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return copySuggestion(&entry.suggestion), nil
	}

	s.mu.Lock()
	// Re-check under write lock in case another goroutine refreshed it.
	entry, ok = s.entries[key]
	if ok && now.Before(entry.expiresAt) {
		s.mu.Unlock()
		return copySuggestion(&entry.suggestion), nil
	}
	if ok {
		delete(s.entries, key)
	}

	if call, waiting := s.inFlight[key]; waiting {
		s.mu.Unlock()
		return waitForInFlight(ctx, call)
	}

	call := &inFlightCall{done: make(chan struct{})}
	s.inFlight[key] = call
	s.mu.Unlock()

	// Detached so one caller's deadline cannot fail every waiter.
	go s.fetchAndBroadcast(context.WithoutCancel(ctx), key, description, categories, call)
	return waitForInFlight(ctx, call)
}

func (s *CachedSuggester) fetchAndBroadcast(
	ctx context.Context,
	key, description string,
	categories []models.Category,
	call *inFlightCall,
) {
	result, err := s.inner.SuggestCategory(ctx, description, categories)
	if err == nil && result == nil {
		err = errors.New("empty suggestion")
	}

	fetchedAt := time.Now()
	s.mu.Lock()
	if err == nil {
		s.entries[key] = cachedSuggestion{
			suggestion: *result,
			expiresAt:  fetchedAt.Add(s.ttl),
		}
		s.cleanupExpiredLocked(fetchedAt)
	}
	call.result = result
	call.err = err
	delete(s.inFlight, key)
	close(call.done)
	s.mu.Unlock()
}

func waitForInFlight(ctx context.Context, call *inFlightCall) (*CategorySuggestion, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.done:
		if call.err != nil {
			return nil, call.err
		}
		return copySuggestion(call.result), nil
	}
}

func (s *CachedSuggester) cleanupExpiredLocked(now time.Time) {
	interval := min(s.ttl, maxCleanupInterval)
	if !s.lastCleanup.IsZero() && now.Sub(s.lastCleanup) < interval {
		return
	}
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.lastCleanup = now
}

func copySuggestion(s *CategorySuggestion) *CategorySuggestion {
	out := *s
	return &out
}
