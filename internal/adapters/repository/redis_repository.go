package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/brightlane/sitecms/internal/infrastructure/config"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/ports"
)

// maxWatchRetries bounds optimistic transaction retries when writers collide
const maxWatchRetries = 16

// ConnectRedis dials redis, retrying with exponential backoff until the
// server answers PING or ctx is done.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	const maxAttempts = 5
	retryDelay := 500 * time.Millisecond

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.PoolSize,
	})

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = client.Ping(ctx).Err(); err == nil {
			log.Infow("Connected to redis", "addr", cfg.Addr, "db", cfg.DB)
			return client, nil
		}

		log.Warnw("Redis connection failed", "attempt", attempt, "error", err)
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
		retryDelay *= 2
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s after %d attempts: %w", cfg.Addr, maxAttempts, err)
}

// RedisRepository stores each collection as one string key holding the JSON array
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a redis-backed collection repository. Keys are
// prefix + collection name.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

var _ ports.CollectionRepository = (*RedisRepository)(nil)

func (r *RedisRepository) key(name string) string {
	return r.prefix + "collection:" + name
}

func (r *RedisRepository) Load(ctx context.Context, name string, defaults []byte) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	key := r.key(name)
	if err := r.client.SetNX(ctx, key, defaults, 0).Err(); err != nil {
		return nil, storageError(name, "write", err)
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, storageError(name, "read", err)
	}
	return data, nil
}

func (r *RedisRepository) Save(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return storageError(name, "write", err)
	}
	return nil
}

// Mutate runs fn inside a WATCH/MULTI transaction. fn may run more than once
// when another writer changes the key first.
func (r *RedisRepository) Mutate(ctx context.Context, name string, defaults []byte, fn ports.MutateFunc) error {
	if err := checkName(name); err != nil {
		return err
	}

	key := r.key(name)
	var fnErr error
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			current = defaults
		} else if err != nil {
			return storageError(name, "read", err)
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		fnErr = nil
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if fnErr != nil {
			return fnErr
		}
		if err != nil {
			return storageError(name, "write", err)
		}
		return nil
	}
	return storageError(name, "write", errors.New("too many concurrent writers"))
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
