package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// RedisStateStore хранит состояние одним JSON-значением под ключом key
type RedisStateStore struct {
	client redis.Cmdable
	key    string
}

// ConnectRedis создаёт клиент Redis и проверяет соединение
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis %s is unavailable: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisStateStore создаёт хранилище поверх клиента Redis
func NewRedisStateStore(client redis.Cmdable, key string) *RedisStateStore {
	return &RedisStateStore{client: client, key: key}
}

// Load читает состояние из Redis
func (s *RedisStateStore) Load(ctx context.Context) (*entity.StateSnapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return DecodeSnapshot(data)
}

// Save перезаписывает состояние в Redis одной командой SET
func (s *RedisStateStore) Save(ctx context.Context, snapshot *entity.StateSnapshot) error {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

var _ port.StateStore = (*RedisStateStore)(nil)
