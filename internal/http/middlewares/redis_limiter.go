package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares fixed-window counters between server instances. Each
// window is one key that expires with the window.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := r.windowKey(key)

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(windowKey).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		cmd := r.client.B().Expire().Key(windowKey).Seconds(int64(r.window / time.Second)).Build()
		if err := r.client.Do(ctx, cmd).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}

func (r *RedisLimiter) windowKey(key string) string {
	slot := r.now().UnixNano() / int64(r.window)
	return r.prefix + key + ":" + strconv.FormatInt(slot, 10)
}
