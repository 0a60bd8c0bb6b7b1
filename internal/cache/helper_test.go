package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCacheTest(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupCacheTest(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			calls++
			*dest = []string{"go", "travel"}
			return nil
		}
	}

	var first []string
	err := Aside(ctx, CategoryListKey, &first, TaxonomyTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "travel"}, first)
	assert.Equal(t, 1, calls)

	// Second read is served from Redis without touching fetch.
	var second []string
	err = Aside(ctx, CategoryListKey, &second, TaxonomyTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupCacheTest(t)
	ctx := context.Background()

	wantErr := assert.AnError
	var dest []string
	err := Aside(ctx, TagListKey, &dest, TaxonomyTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, TagListKey, &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateTaxonomies(t *testing.T) {
	setupCacheTest(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, CategoryListKey, []string{"go"}, time.Minute))
	require.NoError(t, SetJSON(ctx, TagListKey, []string{"tutorial"}, time.Minute))

	InvalidateTaxonomies(ctx)

	var dest []string
	found, err := GetJSON(ctx, CategoryListKey, &dest)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = GetJSON(ctx, TagListKey, &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_NilClient(t *testing.T) {
	SetClient(nil)

	var dest []string
	found, err := GetJSON(context.Background(), CategoryListKey, &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}
