package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PredictionCache remembers which matches have already been alerted on, with
// a TTL, so the predictor does not send duplicate notifications across runs.
type PredictionCache struct {
	client *redis.Client
}

func NewPredictionCache(addr, password string, db int) (*PredictionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &PredictionCache{client: client}, nil
}

// MarkAlerted records that an alert went out for the match key.
func (c *PredictionCache) MarkAlerted(ctx context.Context, matchKey string, ttl time.Duration) error {
	key := "alerted:" + matchKey
	return c.client.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Err()
}

// WasAlerted reports whether an alert for the match key is still within its
// cooldown window.
func (c *PredictionCache) WasAlerted(ctx context.Context, matchKey string) (bool, error) {
	n, err := c.client.Exists(ctx, "alerted:"+matchKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check alert key: %w", err)
	}
	return n > 0, nil
}

func (c *PredictionCache) Close() error {
	return c.client.Close()
}
