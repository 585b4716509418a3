package aitext

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimit   = 2.0
	defaultBurst       = 4
	defaultMaxRetries  = 2
	defaultBaseBackoff = 500 * time.Millisecond
	defaultTimeout     = 30 * time.Second
)

// LimitConfig 限流、超时、重试
type LimitConfig struct {
	RateLimit  float64
	Burst      int
	MaxRetries int
	Backoff    time.Duration
	Timeout    time.Duration
}

// Limited 给任意 Completer 加上限流、单次超时和指数退避重试
type Limited struct {
	next       Completer
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

func NewLimited(next Completer, cfg LimitConfig, logger *zap.Logger) *Limited {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBaseBackoff
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limited{
		next:       next,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

func (l *Limited) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			wait := l.backoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		if err := l.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
		out, err := l.once(ctx, messages, opts)
		if err == nil {
			return out, nil
		}
		lastErr = err
		// 上层取消或配置问题不重试
		if ctx.Err() != nil || errors.Is(err, ErrNotConfigured) {
			return "", err
		}
		l.logger.Warn("ai completion failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return "", fmt.Errorf("ai completion: max retries exceeded: %w", lastErr)
}

func (l *Limited) once(ctx context.Context, messages []Message, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.next.Complete(ctx, messages, opts)
}
