package gemini

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

type countingSuggester struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (s *countingSuggester) SuggestCategory(
	_ context.Context,
	_ string,
	_ []models.Category,
) (*CategorySuggestion, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &CategorySuggestion{Category: models.CategoryFood, Confidence: 0.8, Reasoning: "meal"}, nil
}

func TestCachedSuggester(t *testing.T) {
	t.Parallel()

	categories := models.Categories()

	t.Run("reuses answer for same description", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{}
		svc := NewCachedSuggester(upstream, time.Hour)

		got1, err := svc.SuggestCategory(context.Background(), "Chicken Rice", categories)
		require.NoError(t, err)
		require.Equal(t, models.CategoryFood, got1.Category)

		got2, err := svc.SuggestCategory(context.Background(), "  chicken   rice ", categories)
		require.NoError(t, err)
		require.Equal(t, got1, got2)
		require.Equal(t, int32(1), upstream.calls.Load())
	})

	t.Run("returned suggestions are independent copies", func(t *testing.T) {
		t.Parallel()
		svc := NewCachedSuggester(&countingSuggester{}, time.Hour)

		got1, err := svc.SuggestCategory(context.Background(), "coffee", categories)
		require.NoError(t, err)
		got1.Reasoning = "mutated"

		got2, err := svc.SuggestCategory(context.Background(), "coffee", categories)
		require.NoError(t, err)
		require.Equal(t, "meal", got2.Reasoning)
	})

	t.Run("cache key includes category set", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{}
		svc := NewCachedSuggester(upstream, time.Hour)

		_, err := svc.SuggestCategory(context.Background(), "coffee", categories)
		require.NoError(t, err)
		_, err = svc.SuggestCategory(context.Background(), "coffee", categories[:3])
		require.NoError(t, err)
		require.Equal(t, int32(2), upstream.calls.Load())
	})

	t.Run("expired entry triggers refresh", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{}
		svc := NewCachedSuggester(upstream, time.Nanosecond)

		_, err := svc.SuggestCategory(context.Background(), "coffee", categories)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = svc.SuggestCategory(context.Background(), "coffee", categories)
		require.NoError(t, err)
		require.Equal(t, int32(2), upstream.calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{err: errors.New("quota exceeded")}
		svc := NewCachedSuggester(upstream, time.Hour)

		for range 2 {
			_, err := svc.SuggestCategory(context.Background(), "coffee", categories)
			require.Error(t, err)
		}
		require.Equal(t, int32(2), upstream.calls.Load())
	})

	t.Run("concurrent callers share one upstream call", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{delay: 50 * time.Millisecond}
		svc := NewCachedSuggester(upstream, time.Hour)

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				got, err := svc.SuggestCategory(context.Background(), "taxi", categories)
				if assert.NoError(t, err) {
					assert.Equal(t, models.CategoryFood, got.Category)
				}
			})
		}
		wg.Wait()
		require.Equal(t, int32(1), upstream.calls.Load())
	})

	t.Run("blank description is rejected before upstream", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{}
		svc := NewCachedSuggester(upstream, time.Hour)

		_, err := svc.SuggestCategory(context.Background(), "   ", categories)
		require.True(t, models.IsValidation(err))
		require.Zero(t, upstream.calls.Load())
	})

	t.Run("nil inner is not configured", func(t *testing.T) {
		t.Parallel()
		svc := NewCachedSuggester(nil, time.Hour)
		_, err := svc.SuggestCategory(context.Background(), "coffee", categories)
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("caller cancellation does not cancel other waiters", func(t *testing.T) {
		t.Parallel()
		upstream := &countingSuggester{delay: 30 * time.Millisecond}
		svc := NewCachedSuggester(upstream, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.SuggestCategory(ctx, "groceries", categories)
		require.ErrorIs(t, err, context.Canceled)

		got, err := svc.SuggestCategory(context.Background(), "groceries", categories)
		require.NoError(t, err)
		require.Equal(t, models.CategoryFood, got.Category)
		require.Equal(t, int32(1), upstream.calls.Load())
	})
}
