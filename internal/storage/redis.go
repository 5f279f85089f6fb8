package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	myErr "studenthub/internal/types/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type RedisStorage struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
	ttl         time.Duration
	timeout     time.Duration
}

// NewRedisStorage ttl = 0 означает хранение без срока жизни
func NewRedisStorage(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	ttl time.Duration,
	timeout time.Duration,
) *RedisStorage {
	return &RedisStorage{
		RedisClient: redisClient,
		Logger:      logger,
		ttl:         ttl,
		timeout:     timeout,
	}
}

func (rs *RedisStorage) Get(key string) ([]byte, error) {
	ctx, cancel := rs.context()
	defer cancel()

	value, err := rs.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErr.ErrNotFound
		}

		rs.Logger.Error(
			"Failed get cart snapshot from Redis",
			zap.Error(err),
			zap.String("key", key),
		)

		return nil, fmt.Errorf("%w: %v", myErr.ErrStorageRead, err)
	}

	return value, nil
}

func (rs *RedisStorage) Set(key string, value []byte) error {
	ctx, cancel := rs.context()
	defer cancel()

	if err := rs.RedisClient.Set(ctx, key, value, rs.ttl).Err(); err != nil {
		rs.Logger.Error(
			"Failed save cart snapshot to Redis",
			zap.Error(err),
			zap.String("key", key),
		)

		return fmt.Errorf("%w: %v", myErr.ErrStorageWrite, err)
	}

	return nil
}

func (rs *RedisStorage) context() (context.Context, context.CancelFunc) {
	if rs.timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), rs.timeout)
}
