// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package storage

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Opiniated default timeouts for Redis operations.
const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// redisKeyPrefix namespaces concierge state inside a shared Redis instance.
const redisKeyPrefix = "concierge:state:"

// # Redis Backend

// RedisStore persists keys in a Redis keyspace.
//
// It exists for kiosk-style deployments where several terminals in the lobby
// should share one guest-facing session/cart profile. Keys carry no TTL: state
// lives until an explicit logout or clear, same as the file backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses a Redis URL, validates connectivity, and returns a
// ready-to-use [RedisStore].
func NewRedisStore(context stdctx.Context, redisURL string, logger *slog.Logger) (*RedisStore, error) {

	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("storage_redis_invalid_url: %w", err)
	}

	// A state store sees a handful of operations per user action; a small
	// pool is plenty.
	options.PoolSize = 4
	options.MinIdleConns = 1

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	// Validate connectivity immediately at startup.
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage_redis_ping_failed: %w", err)
	}

	logger.Info("redis state store connected", slog.String("addr", options.Addr))

	return &RedisStore{client: client}, nil
}

/*
Get returns the raw document stored under key.

Returns:
  - []byte: The stored document
  - error: [ErrKeyNotFound] when absent, connectivity errors otherwise
*/
func (store *RedisStore) Get(context stdctx.Context, key string) ([]byte, error) {

	raw, err := store.client.Get(context, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("storage_redis_get_failed: %w", err)
	}

	return raw, nil
}

/*
Set replaces the document stored under key.

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Set(context stdctx.Context, key string, value []byte) error {

	if err := store.client.Set(context, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage_redis_set_failed: %w", err)
	}

	return nil
}

/*
Delete removes the document stored under key. Idempotent.

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Delete(context stdctx.Context, key string) error {

	if err := store.client.Del(context, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("storage_redis_delete_failed: %w", err)
	}

	return nil
}

// Close releases the underlying Redis connection pool.
func (store *RedisStore) Close() error {
	return store.client.Close()
}
