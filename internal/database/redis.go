package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/modubox/lockerhub/backend-go/internal/config"
)

// RedisClient wraps the redis client with helper methods for the
// station weather cache. All methods are nil-receiver safe so the
// service keeps working when Redis is unavailable.
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
	cfg    *config.Config
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// NewRedisClientForTesting creates a Redis client with a provided redis.Client (for testing)
func NewRedisClientForTesting(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}

// weatherKey generates a Redis key for a coordinate pair. Coordinates are
// rounded to four decimal places so nearby lookups share a cache entry.
func weatherKey(latitude, longitude float64) string {
	return fmt.Sprintf("weather:%.4f:%.4f", latitude, longitude)
}

// GetWeather retrieves a cached weather snapshot for the given coordinates.
// Returns (nil, nil) on a cache miss or when Redis is not configured.
func (r *RedisClient) GetWeather(ctx context.Context, latitude, longitude float64, dest any) (bool, error) {
	if r == nil {
		return false, nil
	}

	key := weatherKey(latitude, longitude)

	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		r.logger.Error("❌ [Redis] Failed to get cached weather",
			"key", key,
			"error", err,
		)
		return false, err
	}

	if err := json.Unmarshal([]byte(result), dest); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to unmarshal cached weather, ignoring",
			"key", key,
			"error", err,
		)
		return false, nil
	}

	r.logger.Debug("📖 [Redis] Weather cache hit", "key", key)
	return true, nil
}

// SetWeather stores a weather snapshot for the given coordinates with TTL
func (r *RedisClient) SetWeather(ctx context.Context, latitude, longitude float64, snapshot any) error {
	if r == nil {
		return nil
	}

	key := weatherKey(latitude, longitude)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	ttl := time.Duration(r.cfg.WeatherCacheTTL) * time.Second
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to cache weather",
			"key", key,
			"error", err,
		)
		return err
	}

	r.logger.Debug("💾 [Redis] Weather cached", "key", key, "ttl", ttl)
	return nil
}
