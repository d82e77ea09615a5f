package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func keyRevokedToken(jti string) string { return "auth:revoked:" + jti }

// RevokeToken marks a token id as revoked until exp. A nil client is a no-op.
func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, exp time.Time) error {
	if rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, keyRevokedToken(jti), "1", ttl).Err()
}

// IsTokenRevoked reports whether jti was revoked. Redis failures fail open.
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, jti string) bool {
	if rdb == nil || jti == "" {
		return false
	}
	n, err := rdb.Exists(ctx, keyRevokedToken(jti)).Result()
	return err == nil && n > 0
}
