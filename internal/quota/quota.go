// Package quota 每个用户每天的 Ask 次数限制
package quota

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrQuotaExceeded = errors.New("daily quota exceeded")

// Counter 计数并判断是否超限，返回本次之后的已用次数
type Counter interface {
	Take(ctx context.Context, userID string, day time.Time) (int, error)
}

// dayKey 按用户本地日期分桶
func dayKey(userID string, day time.Time) string {
	return fmt.Sprintf("daybook:ask:%s:%s", userID, day.Format("2006-01-02"))
}

// RedisCounter INCR 计数，key 保留两天后自然过期
type RedisCounter struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

func NewRedisCounter(client *redis.Client, limit int) *RedisCounter {
	return &RedisCounter{client: client, limit: limit, ttl: 48 * time.Hour}
}

func (c *RedisCounter) Take(ctx context.Context, userID string, day time.Time) (int, error) {
	key := dayKey(userID, day)
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment quota: %w", err)
	}
	used := int(incr.Val())
	if c.limit > 0 && used > c.limit {
		// 超限的那次不计入
		if err := c.client.Decr(ctx, key).Err(); err != nil {
			return used, fmt.Errorf("failed to roll back quota: %w", err)
		}
		return used - 1, ErrQuotaExceeded
	}
	return used, nil
}

// MemoryCounter 未配置 Redis 时的单进程计数
type MemoryCounter struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
}

func NewMemoryCounter(limit int) *MemoryCounter {
	return &MemoryCounter{limit: limit, counts: make(map[string]int)}
}

func (c *MemoryCounter) Take(_ context.Context, userID string, day time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := dayKey(userID, day)
	if c.limit > 0 && c.counts[key] >= c.limit {
		return c.counts[key], ErrQuotaExceeded
	}
	c.counts[key]++
	return c.counts[key], nil
}
