package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "estimator:session:"

// RedisConfig configures NewRedisStore.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	TTL            time.Duration
	ConnectTimeout time.Duration
}

// RedisStore keeps sessions as JSON values that expire after the idle TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore connects to Redis, retrying with exponential backoff until
// cfg.ConnectTimeout has elapsed.
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	const operation = "session.NewRedisStore"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout
	policy.MaxInterval = 5 * time.Second

	err := backoff.RetryNotify(
		func() error {
			return client.Ping(ctx).Err()
		},
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("Redis ping failed, retrying",
				zap.String("addr", cfg.Addr),
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: connect to %s: %w", operation, cfg.Addr, err)
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.Addr))
	return NewRedisStoreFromClient(client, cfg.TTL), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func (r *RedisStore) Create(ctx context.Context) (State, error) {
	s := NewState(r.now())
	data, err := json.Marshal(s)
	if err != nil {
		return State{}, fmt.Errorf("marshal session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, buildKey(s.ID), data, r.ttl).Result()
	if err != nil {
		return State{}, fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return State{}, fmt.Errorf("create session: id collision %s", s.ID)
	}
	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (State, error) {
	data, err := r.client.GetEx(ctx, buildKey(id), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return State{}, fmt.Errorf("get session: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s State) error {
	s.UpdatedAt = r.now()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := r.client.SetXX(ctx, buildKey(s.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.ID)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, buildKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func buildKey(id string) string {
	return keyPrefix + id
}
