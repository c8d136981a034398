package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tickethub/models"
)

// RedisStore keeps the durable snapshot in Redis, one key per collection
// plus the session key. All writes for a snapshot go through a single
// transactional pipeline so readers never observe a half-written state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, snap *models.Snapshot) error {
	enc, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyUsers, enc.users, 0)
	pipe.Set(ctx, KeyTickets, enc.tickets, 0)
	pipe.Set(ctx, KeyOrders, enc.orders, 0)
	if enc.session != nil {
		pipe.Set(ctx, KeySession, enc.session, 0)
	} else {
		pipe.Del(ctx, KeySession)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*models.Snapshot, error) {
	users, err := s.get(ctx, KeyUsers)
	if err != nil {
		return nil, err
	}
	tickets, err := s.get(ctx, KeyTickets)
	if err != nil {
		return nil, err
	}
	orders, err := s.get(ctx, KeyOrders)
	if err != nil {
		return nil, err
	}
	session, err := s.get(ctx, KeySession)
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(users, tickets, orders, session), nil
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, nil
}
