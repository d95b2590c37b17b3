package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

const (
	revokedPrefix = "revoked:"
	ratePrefix    = "rate:"
)

// NewRedisClient cria o client a partir de uma URL redis:// e verifica a conexão
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// RedisStore guarda tokens revogados e contadores de rate limit no Redis
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore cria um novo RedisStore
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

var (
	_ ports.RevocationList = (*RedisStore)(nil)
	_ ports.RateCounter    = (*RedisStore)(nil)
)

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Increment usa janela fixa: a expiração é definida no primeiro evento da janela
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = ratePrefix + key

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}
