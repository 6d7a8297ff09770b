package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateLimitRepository struct {
	client *redis.Client
}

func NewRedisRateLimitRepository(client *redis.Client) RateLimitRepository {
	return &redisRateLimitRepository{client: client}
}

// CheckRateLimit counts hits in a fixed window starting at the first hit.
// On a Redis error the request is allowed and the error is returned for logging.
func (r *redisRateLimitRepository) CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error) {
	// Hash the key so client addresses are not stored in the clear
	hashedKey := fmt.Sprintf("ratelimit:%x", sha256.Sum256([]byte(key)))

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, hashedKey)
		pipe.ExpireNX(ctx, hashedKey, window)
		return nil
	})
	if err != nil {
		return true, err
	}

	return incr.Val() <= int64(requests), nil
}
