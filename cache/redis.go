package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

var (
	ErrUnavailable = errors.New("redis not available")
	ErrMiss        = errors.New("cache miss")
)

// InitRedis initializes Redis connection. addr is either host:port or a
// redis:// URL; a non-empty password overrides the one in the URL.
func InitRedis(addr, password string) error {
	opts, err := clientOptions(addr, password)
	if err != nil {
		return err
	}
	RedisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient.Close()
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

func clientOptions(addr, password string) (*redis.Options, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}
		opts = parsed
	}
	if password != "" {
		opts.Password = password
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 5
	return opts, nil
}

// CloseRedis closes Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable(ctx context.Context) bool {
	if RedisClient == nil {
		return false
	}
	return RedisClient.Ping(ctx).Err() == nil
}

// ==================== CACHE KEYS ====================

const (
	GameTypesCacheKey = "gametypes:all"
	GamesCacheKey     = "games:all"

	EventsCacheKey       = "events:all"
	EventsByGamePrefix   = "events:game:" // events:game:5
	eventsInvalidatePath = "events:*"

	RateLimitPrefix = "ratelimit:"
)

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores any value in cache with TTL
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable(ctx) {
		return ErrUnavailable
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get decodes the cached value for key into dest
func Get(ctx context.Context, key string, dest interface{}) error {
	if !IsRedisAvailable(ctx) {
		return ErrUnavailable
	}

	val, err := RedisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes keys from cache
func Delete(ctx context.Context, keys ...string) error {
	if !IsRedisAvailable(ctx) {
		return nil
	}
	return RedisClient.Del(ctx, keys...).Err()
}

// DeletePattern removes all keys matching pattern
func DeletePattern(ctx context.Context, pattern string) error {
	if !IsRedisAvailable(ctx) {
		return nil
	}

	iter := RedisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ==================== GAME TYPES ====================

func GetGameTypes(ctx context.Context, dest interface{}) error {
	return Get(ctx, GameTypesCacheKey, dest)
}

// SetGameTypes caches game types for 1 hour
func SetGameTypes(ctx context.Context, gameTypes interface{}) error {
	return Set(ctx, GameTypesCacheKey, gameTypes, time.Hour)
}

func InvalidateGameTypes(ctx context.Context) error {
	return Delete(ctx, GameTypesCacheKey)
}

// ==================== GAMES ====================

func GetGames(ctx context.Context, dest interface{}) error {
	return Get(ctx, GamesCacheKey, dest)
}

// SetGames caches all games for 5 minutes
func SetGames(ctx context.Context, games interface{}) error {
	return Set(ctx, GamesCacheKey, games, 5*time.Minute)
}

func InvalidateGames(ctx context.Context) error {
	return Delete(ctx, GamesCacheKey)
}

// ==================== EVENTS ====================

// EventsKey is the list key for one game, or for all events when gameID is 0.
func EventsKey(gameID uint) string {
	if gameID == 0 {
		return EventsCacheKey
	}
	return fmt.Sprintf("%s%d", EventsByGamePrefix, gameID)
}

func GetEvents(ctx context.Context, gameID uint, dest interface{}) error {
	return Get(ctx, EventsKey(gameID), dest)
}

// SetEvents caches an event list for 5 minutes
func SetEvents(ctx context.Context, gameID uint, events interface{}) error {
	return Set(ctx, EventsKey(gameID), events, 5*time.Minute)
}

// InvalidateEvents drops every cached event list.
func InvalidateEvents(ctx context.Context) error {
	return DeletePattern(ctx, eventsInvalidatePath)
}

// ==================== RATE LIMITING ====================

// CheckRateLimit counts a request for key in a fixed window.
// It returns whether the request is allowed and how many remain.
func CheckRateLimit(ctx context.Context, key string, maxRequests int, window time.Duration) (bool, int, error) {
	if !IsRedisAvailable(ctx) {
		return true, maxRequests, nil
	}

	fullKey := RateLimitPrefix + key

	count, err := RedisClient.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := RedisClient.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, 0, err
		}
	}

	remaining := maxRequests - int(count)
	if remaining < 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}
