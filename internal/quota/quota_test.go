package quota

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounter(t *testing.T) {
	c := NewMemoryCounter(2)
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	used, err := c.Take(ctx, "u1", day)
	require.NoError(t, err)
	assert.Equal(t, 1, used)
	used, err = c.Take(ctx, "u1", day)
	require.NoError(t, err)
	assert.Equal(t, 2, used)

	used, err = c.Take(ctx, "u1", day)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 2, used)

	// 其他用户、第二天各自计数
	_, err = c.Take(ctx, "u2", day)
	assert.NoError(t, err)
	_, err = c.Take(ctx, "u1", day.AddDate(0, 0, 1))
	assert.NoError(t, err)
}

func TestMemoryCounterUnlimited(t *testing.T) {
	c := NewMemoryCounter(0)
	for i := 0; i < 50; i++ {
		_, err := c.Take(context.Background(), "u1", time.Now())
		require.NoError(t, err)
	}
}

func TestDayKey(t *testing.T) {
	day := time.Date(2024, 12, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "daybook:ask:u1:2024-12-30", dayKey("u1", day))
}

func TestRedisCounterUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := NewRedisCounter(client, 10).Take(context.Background(), "u1", time.Now())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
}
