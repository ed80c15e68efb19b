package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionRepo interface {
	Create(ctx context.Context, memberID int64, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

type SessionRepo struct {
	cache *RedisCache
}

var _ ISessionRepo = (*SessionRepo)(nil)

func NewSessionRepo(cache *RedisCache) *SessionRepo {
	return &SessionRepo{cache: cache}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Create 產生新的 session id, 碰撞時重新產生
func (r *SessionRepo) Create(ctx context.Context, memberID int64, ttl time.Duration) (string, error) {
	for i := 0; i < 3; i++ {
		sessionID := uuid.NewString()
		ok, err := r.cache.SetNX(ctx, sessionKey(sessionID), memberID, ttl)
		if err != nil {
			return "", err
		}
		if ok {
			return sessionID, nil
		}
	}
	return "", errors.New("failed to allocate session id")
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (int64, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return 0, ErrSessionNotFound
	}

	val, err := r.cache.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, ErrCacheMiss) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}

	memberID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupted session %s: %w", sessionID, err)
	}
	return memberID, nil
}

// Delete 刪除不存在的 session 不視為錯誤
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, sessionKey(sessionID))
}
