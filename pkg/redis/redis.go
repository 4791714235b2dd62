package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const blacklistPrefix = "token:blacklist:"

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken marks a token as revoked until it would have expired anyway
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}
	return client.Set(ctx, blacklistPrefix+token, "revoked", expiry).Err()
}

// IsTokenBlacklisted reports whether a token has been revoked.
// When Redis is not configured, no token is considered revoked.
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if client == nil {
		return false
	}
	exists, err := client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		logger.Warn("Failed to check token blacklist", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return exists > 0
}
