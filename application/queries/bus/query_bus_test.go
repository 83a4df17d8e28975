package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchddd/infrastructure/cache"
	"sketchddd/pkg/observability"
)

type lookupQuery struct {
	Key string
}

func (q lookupQuery) Validate() error {
	if q.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

func (q lookupQuery) CacheKey() string { return q.Key }

type uncachedQuery struct{}

func (uncachedQuery) Validate() error { return nil }

func TestQueryBus_CachesCacheableQueries(t *testing.T) {
	c, err := cache.NewLRUCache(16)
	require.NoError(t, err)
	b := NewQueryBus(MetricsMiddleware(observability.NoopMetrics{}), CachingMiddleware(c, 60))

	calls := 0
	handler := QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return calls, nil
	})
	require.NoError(t, b.Register(lookupQuery{}, handler))
	require.NoError(t, b.Register(uncachedQuery{}, handler))

	ctx := context.Background()
	first, err := b.Ask(ctx, lookupQuery{Key: "a"})
	require.NoError(t, err)
	second, err := b.Ask(ctx, lookupQuery{Key: "a"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = b.Ask(ctx, lookupQuery{Key: "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, _ = b.Ask(ctx, uncachedQuery{})
	_, _ = b.Ask(ctx, uncachedQuery{})
	assert.Equal(t, 4, calls)

	require.NoError(t, c.Clear(ctx))
	_, err = b.Ask(ctx, lookupQuery{Key: "a"})
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
}

func TestQueryBus_Errors(t *testing.T) {
	b := NewQueryBus()
	failure := errors.New("boom")
	require.NoError(t, b.Register(lookupQuery{}, QueryHandlerFunc(func(context.Context, Query) (interface{}, error) {
		return nil, failure
	})))
	assert.Error(t, b.Register(lookupQuery{}, QueryHandlerFunc(nil)))

	_, err := b.Ask(context.Background(), lookupQuery{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = b.Ask(context.Background(), lookupQuery{Key: "x"})
	assert.ErrorIs(t, err, failure)

	_, err = b.Ask(context.Background(), uncachedQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}
