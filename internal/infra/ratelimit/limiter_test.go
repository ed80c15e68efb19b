package ratelimit

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	result int64
	err    error
	keys   []string
	args   []interface{}
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.keys = keys
	f.args = args
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(f.result)
	}
	return cmd
}

func TestRsTokenBucketAllow(t *testing.T) {
	client := &fakeRedis{result: 1}
	limiter := NewRsTokenBucket(client, "ratelimit", &LimiterConfig{Capacity: 3, RatePS: 2})

	ok, err := limiter.Allow(context.Background(), "login:127.0.0.1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"ratelimit:login:127.0.0.1"}, client.keys)
	require.Equal(t, 3, client.args[0])
	require.Equal(t, 2, client.args[1])
	// IdleTTL 未設定時補預設值
	require.Equal(t, 60, client.args[3])
}

func TestRsTokenBucketDenied(t *testing.T) {
	limiter := NewRsTokenBucket(&fakeRedis{result: 0}, "ratelimit", nil)
	ok, err := limiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRsTokenBucketError(t *testing.T) {
	boom := errors.New("redis down")
	limiter := NewRsTokenBucket(&fakeRedis{err: boom}, "ratelimit", nil)
	ok, err := limiter.Allow(context.Background(), "k")
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
}

func TestRsTokenBucketWithRedis(t *testing.T) {
	addr := os.Getenv("BOOKSTORE_TEST_REDIS")
	if addr == "" {
		t.Skip("BOOKSTORE_TEST_REDIS not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("BOOKSTORE_TEST_REDIS_PASSWORD"), DB: 1})
	defer client.Close()
	require.NoError(t, client.FlushDB(ctx).Err())

	limiter := NewRsTokenBucket(client, "ratelimit", &LimiterConfig{Capacity: 5, RatePS: 1, IdleTTL: time.Minute})
	frozen := time.Now()
	limiter.now = func() time.Time { return frozen }

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(ctx, "basic")
		require.NoError(t, err)
		require.True(t, ok, "request %d should pass", i+1)
	}
	ok, err := limiter.Allow(ctx, "basic")
	require.NoError(t, err)
	require.False(t, ok)

	// 兩秒後補回兩個 token
	frozen = frozen.Add(2 * time.Second)
	ok, err = limiter.Allow(ctx, "basic")
	require.NoError(t, err)
	require.True(t, ok)
}
