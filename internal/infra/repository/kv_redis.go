package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redisを保存領域として使う
type RedisKeyValueStore struct {
	client *redis.Client
	prefix string
}

// redis://host:port/db を受け取って接続確認まで行う
func NewRedisKeyValueStore(ctx context.Context, redisURL string, prefix string) (*RedisKeyValueStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisKeyValueStoreFromClient(client, prefix), nil
}

// 既存クライアントから作る
func NewRedisKeyValueStoreFromClient(client *redis.Client, prefix string) *RedisKeyValueStore {
	return &RedisKeyValueStore{client: client, prefix: prefix}
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// 期限なしで保存（localStorageと同じ）
func (s *RedisKeyValueStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisKeyValueStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *RedisKeyValueStore) Close() error {
	return s.client.Close()
}
