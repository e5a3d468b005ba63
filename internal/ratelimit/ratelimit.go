package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result is one limiter decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter gates requests before they reach any handler.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// SlidingWindow counts requests inside a rolling window backed by a Redis
// sorted set: one member per request, trimmed to the window on every call.
// Limit and window are fixed at construction.
type SlidingWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewSlidingWindow(client *redis.Client, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *SlidingWindow) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	windowStart := now.Add(-l.window)
	member := strconv.FormatInt(now.UnixNano(), 10)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("ratelimit: %w", err)
	}

	n := int(count.Val())

	res := Result{
		Allowed:   n <= l.limit,
		Limit:     l.limit,
		Remaining: l.limit - n,
		Reset:     now.Add(l.window),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}

	if !res.Allowed {
		// A rejected request must not hold a slot in the window.
		l.client.ZRem(ctx, key, member)
	}

	return res, nil
}
