package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	require.NoError(t, InitRedis(mr.Addr(), ""))
	t.Cleanup(func() {
		CloseRedis()
		RedisClient = nil
	})
	return mr
}

func TestEventsKey(t *testing.T) {
	assert.Equal(t, "events:all", EventsKey(0))
	assert.Equal(t, "events:game:7", EventsKey(7))
}

func TestClientOptions(t *testing.T) {
	opts, err := clientOptions("localhost:6379", "secret")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 0, opts.DB)

	opts, err = clientOptions("redis://:pw@cache.internal:6380/2", "")
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 10, opts.PoolSize)

	opts, err = clientOptions("redis://:pw@cache.internal:6380/2", "override")
	require.NoError(t, err)
	assert.Equal(t, "override", opts.Password)

	_, err = clientOptions("redis://cache.internal:6379/abc", "")
	assert.Error(t, err)
}

func TestInitRedisFailsWithoutServer(t *testing.T) {
	assert.Error(t, InitRedis("127.0.0.1:1", ""))
	assert.Nil(t, RedisClient)
}

func TestOperationsWithoutRedis(t *testing.T) {
	RedisClient = nil
	ctx := context.Background()

	assert.False(t, IsRedisAvailable(ctx))

	var dest []string
	assert.ErrorIs(t, GetGames(ctx, &dest), ErrUnavailable)
	assert.ErrorIs(t, SetGameTypes(ctx, []string{"x"}), ErrUnavailable)
	assert.NoError(t, InvalidateGames(ctx))
	assert.NoError(t, InvalidateEvents(ctx))
	assert.NoError(t, CloseRedis())
}

func TestCheckRateLimitAllowsWithoutRedis(t *testing.T) {
	RedisClient = nil

	allowed, remaining, err := CheckRateLimit(context.Background(), "gamer:1", 10, time.Minute)

	assert.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 10, remaining)
}

func TestGamesCacheRoundTrip(t *testing.T) {
	startRedis(t)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, GetGames(ctx, &dest), ErrMiss)

	require.NoError(t, SetGames(ctx, []string{"Catan", "Chess"}))
	require.NoError(t, GetGames(ctx, &dest))
	assert.Equal(t, []string{"Catan", "Chess"}, dest)

	require.NoError(t, InvalidateGames(ctx))
	assert.ErrorIs(t, GetGames(ctx, &dest), ErrMiss)
}

func TestSetAppliesTTL(t *testing.T) {
	mr := startRedis(t)
	ctx := context.Background()

	require.NoError(t, SetGameTypes(ctx, []string{"Strategy"}))
	require.NoError(t, SetGames(ctx, []string{"Catan"}))

	assert.Equal(t, time.Hour, mr.TTL(GameTypesCacheKey))
	assert.Equal(t, 5*time.Minute, mr.TTL(GamesCacheKey))

	mr.FastForward(5 * time.Minute)
	assert.False(t, mr.Exists(GamesCacheKey))
	assert.True(t, mr.Exists(GameTypesCacheKey))
}

func TestInvalidateEventsDropsEveryEventList(t *testing.T) {
	mr := startRedis(t)
	ctx := context.Background()

	require.NoError(t, SetEvents(ctx, 0, []int{1, 2}))
	require.NoError(t, SetEvents(ctx, 3, []int{1}))
	require.NoError(t, SetEvents(ctx, 4, []int{2}))
	require.NoError(t, SetGames(ctx, []string{"Catan"}))

	var dest []int
	require.NoError(t, GetEvents(ctx, 3, &dest))
	assert.Equal(t, []int{1}, dest)

	require.NoError(t, InvalidateEvents(ctx))

	assert.False(t, mr.Exists("events:all"))
	assert.False(t, mr.Exists("events:game:3"))
	assert.False(t, mr.Exists("events:game:4"))
	assert.True(t, mr.Exists(GamesCacheKey))
}

func TestCheckRateLimitCountsWithinWindow(t *testing.T) {
	mr := startRedis(t)
	ctx := context.Background()

	for want := 1; want >= 0; want-- {
		allowed, remaining, err := CheckRateLimit(ctx, "gamer:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, want, remaining)
	}

	allowed, remaining, err := CheckRateLimit(ctx, "gamer:1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, time.Minute, mr.TTL(RateLimitPrefix+"gamer:1"))

	allowed, _, err = CheckRateLimit(ctx, "gamer:2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	mr.FastForward(time.Minute)
	allowed, remaining, err = CheckRateLimit(ctx, "gamer:1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}
