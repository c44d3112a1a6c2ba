// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the read-through cache in front of hydrated record graphs.
// Implementations are best-effort: a failing cache degrades to store reads,
// never to request errors.
type Cache interface {
	GetWork(context context.Context, id string) (*Work, bool)
	SetWork(context context.Context, w *Work)
	GetContainer(context context.Context, id string) (*Container, bool)
	SetContainer(context context.Context, c *Container)

	// Invalidate drops the cached graphs for the given record ids. Empty ids
	// are ignored.
	Invalidate(context context.Context, ids ...string)
}

const (
	workKeyPrefix      = "biblion:work:"
	containerKeyPrefix = "biblion:container:"
)

// RedisCache stores hydrated graphs as JSON under a short TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (cache *RedisCache) GetWork(context context.Context, id string) (*Work, bool) {
	raw, err := cache.client.Get(context, workKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}

	w := &Work{}
	if err := json.Unmarshal(raw, w); err != nil {
		return nil, false
	}
	return w, true
}

func (cache *RedisCache) SetWork(context context.Context, w *Work) {
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	cache.client.Set(context, workKeyPrefix+w.ID, raw, cache.ttl)
}

func (cache *RedisCache) GetContainer(context context.Context, id string) (*Container, bool) {
	raw, err := cache.client.Get(context, containerKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}

	c := &Container{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, false
	}
	return c, true
}

func (cache *RedisCache) SetContainer(context context.Context, c *Container) {
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	cache.client.Set(context, containerKeyPrefix+c.ID, raw, cache.ttl)
}

func (cache *RedisCache) Invalidate(context context.Context, ids ...string) {
	keys := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		if id == "" {
			continue
		}
		// A container edit changes the rendered view of its works too, so
		// both namespaces are dropped for every id.
		keys = append(keys, workKeyPrefix+id, containerKeyPrefix+id)
	}
	if len(keys) == 0 {
		return
	}
	cache.client.Del(context, keys...)
}

// NoopCache disables caching. It stands in when no Redis URL is configured.
type NoopCache struct{}

func NewNoopCache() NoopCache { return NoopCache{} }

func (NoopCache) GetWork(context.Context, string) (*Work, bool)           { return nil, false }
func (NoopCache) SetWork(context.Context, *Work)                          {}
func (NoopCache) GetContainer(context.Context, string) (*Container, bool) { return nil, false }
func (NoopCache) SetContainer(context.Context, *Container)                {}
func (NoopCache) Invalidate(context.Context, ...string)                   {}
