package redis_repo

import (
	"context"
	"encoding/json"
	"time"
)

const subjectsKey = "subjects"

//go:generate mockgen -destination=../../mock/mock_subject_cache.go -package=mock github.com/RoyceAzure/lab/bookstore/internal/infra/redis_repo ISubjectCache
type ISubjectCache interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, subjects []string, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type SubjectCache struct {
	cache *RedisCache
}

var _ ISubjectCache = (*SubjectCache)(nil)

func NewSubjectCache(cache *RedisCache) *SubjectCache {
	return &SubjectCache{cache: cache}
}

// Get 未命中時回傳 ErrCacheMiss
func (c *SubjectCache) Get(ctx context.Context) ([]string, error) {
	val, err := c.cache.Get(ctx, subjectsKey)
	if err != nil {
		return nil, err
	}

	var subjects []string
	if err := json.Unmarshal([]byte(val), &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *SubjectCache) Set(ctx context.Context, subjects []string, ttl time.Duration) error {
	data, err := json.Marshal(subjects)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, subjectsKey, data, ttl)
}

func (c *SubjectCache) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, subjectsKey)
}
