// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/pkg/slice"
)

// # Redis Language Cache

// errStaleLanguageSet aborts a Set whose generation has moved on.
var errStaleLanguageSet = errors.New("language set is stale")

// RedisLanguageCache keeps the distinct language set of each collection in a
// Redis list, one key per resource, next to a generation counter.
type RedisLanguageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLanguageCache builds a cache whose entries expire after ttl.
func NewRedisLanguageCache(client *redis.Client, ttl time.Duration) *RedisLanguageCache {
	return &RedisLanguageCache{client: client, ttl: ttl}
}

// Get returns the cached codes and the current generation in one MULTI.
// An absent or empty list is a miss.
func (cache *RedisLanguageCache) Get(ctx context.Context, resource string) (LanguageSet, bool, error) {
	var (
		list       *redis.StringSliceCmd
		generation *redis.StringCmd
	)

	_, err := cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		list = pipe.LRange(ctx, cacheKey(resource), 0, -1)
		generation = pipe.Get(ctx, generationKey(resource))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return LanguageSet{}, false, fmt.Errorf("redis: read languages of %s: %w", resource, err)
	}

	current, err := generation.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return LanguageSet{}, false, fmt.Errorf("redis: read language generation of %s: %w", resource, err)
	}

	set := LanguageSet{Generation: current}
	values := list.Val()
	if len(values) == 0 {
		return set, false, nil
	}

	set.Codes = slice.Map(values, func(value string) Code { return Code(value) })
	return set, true, nil
}

/*
Set replaces the cached codes of resource.

Description: The generation key is WATCHed and compared with set.Generation;
the list is then rewritten atomically (DEL, RPUSH, EXPIRE in one MULTI). A
stale generation, or an Invalidate landing between WATCH and EXEC, drops the
write without error. An empty set is not cached, since an empty list reads
as a miss.
*/
func (cache *RedisLanguageCache) Set(ctx context.Context, resource string, set LanguageSet) error {
	if len(set.Codes) == 0 {
		return nil
	}

	key, counter := cacheKey(resource), generationKey(resource)
	values := slice.Map(set.Codes, func(code Code) any { return string(code) })

	err := cache.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, counter).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != set.Generation {
			return errStaleLanguageSet
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.RPush(ctx, key, values...)
			pipe.Expire(ctx, key, cache.ttl)
			return nil
		})
		return err
	}, counter)

	switch {
	case err == nil, errors.Is(err, errStaleLanguageSet), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis: write languages of %s: %w", resource, err)
	}
}

// Invalidate drops the cached codes of resource and bumps its generation.
func (cache *RedisLanguageCache) Invalidate(ctx context.Context, resource string) error {
	_, err := cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(resource))
		pipe.Del(ctx, cacheKey(resource))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: invalidate languages of %s: %w", resource, err)
	}
	return nil
}

func cacheKey(resource string) string {
	return constants.RedisPrefixLanguages + resource
}

func generationKey(resource string) string {
	return constants.RedisPrefixLanguageGeneration + resource
}

// # No-op Cache

// NopLanguageCache never holds anything. It backs the in-memory driver,
// where computing the language set is already cheap.
type NopLanguageCache struct{}

func (NopLanguageCache) Get(context.Context, string) (LanguageSet, bool, error) {
	return LanguageSet{}, false, nil
}
func (NopLanguageCache) Set(context.Context, string, LanguageSet) error { return nil }
func (NopLanguageCache) Invalidate(context.Context, string) error       { return nil }
