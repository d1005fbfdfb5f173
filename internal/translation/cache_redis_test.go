// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/translation"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*translation.RedisLanguageCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return translation.NewRedisLanguageCache(client, ttl), server
}

// languages wraps codes read at the initial generation.
func languages(codes ...translation.Code) translation.LanguageSet {
	return translation.LanguageSet{Codes: codes}
}

/*
TestRedisLanguageCache_RoundTrip stores, expires and invalidates the set.
*/
func TestRedisLanguageCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t, time.Minute)

	missed, ok, err := cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, missed.Generation)

	require.NoError(t, cache.Set(ctx, "spell", languages("de", "en", "fr")))

	set, ok, err := cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []translation.Code{"de", "en", "fr"}, set.Codes)
	assert.Equal(t, time.Minute, server.TTL("content:languages:spell"))

	// Resources are cached independently
	_, ok, err = cache.Get(ctx, "monster")
	require.NoError(t, err)
	assert.False(t, ok)

	// A second Set replaces rather than appends
	require.NoError(t, cache.Set(ctx, "spell", languages("en")))
	set, _, err = cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.Equal(t, []translation.Code{"en"}, set.Codes)

	require.NoError(t, cache.Invalidate(ctx, "spell"))
	missed, ok, err = cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), missed.Generation)
}

/*
TestRedisLanguageCache_InvalidateWinsOverStaleSet interleaves a miss, an
invalidation and the write-back of the set computed before it.
*/
func TestRedisLanguageCache_InvalidateWinsOverStaleSet(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t, time.Minute)

	// Reader misses and starts recomputing
	missed, ok, err := cache.Get(ctx, "spell")
	require.NoError(t, err)
	require.False(t, ok)

	// A writer adds "de" and invalidates meanwhile
	require.NoError(t, cache.Invalidate(ctx, "spell"))

	// The reader's stale set is dropped
	stale := translation.LanguageSet{Codes: []translation.Code{"en"}, Generation: missed.Generation}
	require.NoError(t, cache.Set(ctx, "spell", stale))
	assert.False(t, server.Exists("content:languages:spell"))

	_, ok, err = cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.False(t, ok)

	// A set read after the invalidation is stored
	missed, _, err = cache.Get(ctx, "spell")
	require.NoError(t, err)
	fresh := translation.LanguageSet{Codes: []translation.Code{"de", "en"}, Generation: missed.Generation}
	require.NoError(t, cache.Set(ctx, "spell", fresh))

	set, ok, err := cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []translation.Code{"de", "en"}, set.Codes)
}

/*
TestRedisLanguageCache_Expiry drops entries after the TTL.
*/
func TestRedisLanguageCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, "spell", languages("en")))
	server.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "spell")
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestRedisLanguageCache_EmptySetIsNotCached keeps "no languages" a miss.
*/
func TestRedisLanguageCache_EmptySetIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, "spell", languages()))
	assert.False(t, server.Exists("content:languages:spell"))
}

/*
TestRedisLanguageCache_Unavailable surfaces connection errors.
*/
func TestRedisLanguageCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t, time.Minute)
	server.Close()

	_, _, err := cache.Get(ctx, "spell")
	assert.Error(t, err)
	assert.Error(t, cache.Set(ctx, "spell", languages("en")))
	assert.Error(t, cache.Invalidate(ctx, "spell"))
}
