package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jwtpizza/pizza-service/config"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewClient opens a redis connection and verifies it with a ping.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return client, nil
}

// SessionCache remembers revoked sessions so authentication can reject a
// logged-out token without a database round trip. Keys are token signatures.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache keeps revocations for ttl, which should cover the token lifetime.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

func revokedKey(signature string) string {
	return fmt.Sprintf("session:revoked:%s", signature)
}

// RevokeSession marks the session with signature as logged out.
func (s *SessionCache) RevokeSession(ctx context.Context, signature string) error {
	if signature == "" {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(signature), "revoked", s.ttl).Err(); err != nil {
		logger.Error("Failed to cache revoked session", err)
		return err
	}

	logger.Debug("Session revoked in cache", map[string]interface{}{
		"ttl": s.ttl.String(),
	})
	return nil
}

// IsSessionRevoked reports whether signature was revoked and has not yet expired from the cache.
func (s *SessionCache) IsSessionRevoked(ctx context.Context, signature string) (bool, error) {
	if signature == "" {
		return false, nil
	}
	val, err := s.client.Get(ctx, revokedKey(signature)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check revoked session", err)
		return false, err
	}
	return val == "revoked", nil
}

func (s *SessionCache) Close() error {
	logger.Info("Closing Redis connection")
	return s.client.Close()
}
