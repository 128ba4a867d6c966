package oneshot

import (
	"context"
	"fmt"

	"github.com/jsphweid/buzzer/constants"
	"github.com/redis/go-redis/v9"
)

// Redis shares the played flags between processes. Keys never expire; a
// restart of the board is expected to Reset them.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, prefix: constants.OneShotPrefix}
}

func Dial(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("could not reach redis at %v: %w", addr, err)
	}
	return NewRedis(client), nil
}

func (r *Redis) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("could not set played flag for %v: %w", key, err)
	}
	return ok, nil
}

func (r *Redis) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("could not clear played flag for %v: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
