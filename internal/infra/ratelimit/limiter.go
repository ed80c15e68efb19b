package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type LimiterConfig struct {
	Capacity int
	RatePS   int // tokens/秒
	// bucket 閒置多久後由 redis 回收
	IdleTTL time.Duration
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Capacity: 5,
		RatePS:   1,
		IdleTTL:  time.Minute,
	}
}

type ILimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisClient 只需要 Eval, 方便測試替換
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RsTokenBucket 以 redis lua script 實作的分散式 token bucket
type RsTokenBucket struct {
	LimiterConfig
	client RedisClient
	prefix string
	now    func() time.Time
}

var _ ILimiter = (*RsTokenBucket)(nil)

func NewRsTokenBucket(client RedisClient, prefix string, config *LimiterConfig) *RsTokenBucket {
	rb := &RsTokenBucket{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}

	if config != nil {
		rb.LimiterConfig = *config
	} else {
		rb.LimiterConfig = GetDefaultLimiterConfig()
	}
	if rb.IdleTTL <= 0 {
		rb.IdleTTL = time.Minute
	}
	return rb
}

const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local tokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	if tokens == nil then
		tokens = capacity
		lastRefill = now
	end

	local elapsedSeconds = math.max(0, now - lastRefill) / 1000000000
	tokens = math.min(capacity, tokens + elapsedSeconds * rate)

	local allowed = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill', now)
	redis.call('EXPIRE', key, ttl)
	return allowed
`

// Allow 取得一個 token, redis 發生錯誤時回傳 error 由呼叫端決定放行與否
func (r *RsTokenBucket) Allow(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{r.prefix + ":" + key},
		r.Capacity,
		r.RatePS,
		r.now().UnixNano(),
		int(r.IdleTTL.Seconds()),
	).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
