package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"daybook-backend/internal/aitext"
	"daybook-backend/internal/config"
	"daybook-backend/internal/db"
	"daybook-backend/internal/isoweek"
	"daybook-backend/internal/journal"
	"daybook-backend/internal/logic"
	"daybook-backend/internal/memstore"
	"daybook-backend/internal/pgstore"
	"daybook-backend/internal/quota"
)

// app 按配置组装好的服务，Close 按相反顺序释放资源
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	svc      *logic.JournalService
	registry *prometheus.Registry
	closers  []func()
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	engine, err := journal.NewEngine(cfg.Journal.EveningCutoffHour, loc, cfg.Journal.StaleAfter)
	if err != nil {
		return nil, err
	}

	entries, users, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	completer, err := newCompleter(cfg.AI, logger)
	if err != nil {
		return nil, err
	}

	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a.svc, err = logic.NewJournalService(logic.Deps{
		Engine:    engine,
		Calendar:  isoweek.New(loc),
		Entries:   entries,
		Users:     users,
		AI:        completer,
		Quota:     a.newCounter(),
		Publisher: a.newPublisher(),
		Metrics:   logic.NewMetrics(a.registry),
		Logger:    logger,
		Options: logic.Options{
			MaxTokens:   cfg.AI.MaxTokens,
			Temperature: cfg.AI.Temperature,
			ContextDays: cfg.Journal.ContextDays,
		},
	})
	if err != nil {
		return nil, err
	}
	ok = true
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

type entryUserStore interface {
	journal.EntryStore
	journal.UserStore
}

func (a *app) openStore(ctx context.Context) (journal.EntryStore, journal.UserStore, error) {
	var s entryUserStore
	switch a.cfg.Store.Driver {
	case "mysql":
		if err := db.InitDB(a.cfg.Store.MySQLDSN, a.logger); err != nil {
			return nil, nil, err
		}
		conn := db.GetDB()
		a.closers = append(a.closers, func() {
			if sqlDB, err := conn.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		s = db.NewStore(conn)
	case "postgres":
		pg, err := pgstore.Open(ctx, a.cfg.Store.PostgresDSN, a.cfg.Store.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, pg.Close)
		if err := pg.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		a.logger.Info("connected to postgres")
		s = pg
	case "memory":
		a.logger.Warn("using in-memory store, entries are lost on restart")
		s = memstore.New()
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
	}
	return s, s, nil
}

// newCompleter 缺少密钥时降级为 Disabled，所有 AI 调用走兜底
func newCompleter(cfg config.AIConfig, logger *zap.Logger) (aitext.Completer, error) {
	var (
		next aitext.Completer
		err  error
	)
	switch cfg.Provider {
	case "none":
		return aitext.Disabled{}, nil
	case "openai":
		next, err = aitext.NewOpenAICompleter(aitext.OpenAIConfig{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
			Model:   cfg.Model,
		})
	case "hunyuan":
		next, err = aitext.NewHunyuanCompleter(aitext.HunyuanConfig{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			Model:     cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
	if errors.Is(err, aitext.ErrNotConfigured) {
		logger.Warn("ai provider not configured, falling back to defaults", zap.String("provider", cfg.Provider), zap.Error(err))
		return aitext.Disabled{}, nil
	}
	if err != nil {
		return nil, err
	}
	return aitext.NewLimited(next, aitext.LimitConfig{
		RateLimit:  cfg.RateLimit,
		Burst:      cfg.Burst,
		MaxRetries: cfg.MaxRetries,
		Timeout:    cfg.Timeout,
	}, logger), nil
}

// newCounter 配置了 redis 时多实例共享提问次数
func (a *app) newCounter() quota.Counter {
	limit := a.cfg.Journal.AskLimitPerDay
	if a.cfg.Redis.Addr == "" {
		return quota.NewMemoryCounter(limit)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	a.closers = append(a.closers, func() { _ = client.Close() })
	return quota.NewRedisCounter(client, limit)
}

func (a *app) newPublisher() logic.Publisher {
	if len(a.cfg.Kafka.Brokers) == 0 {
		return logic.NopPublisher{}
	}
	p := logic.NewKafkaPublisher(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic, a.logger)
	a.closers = append(a.closers, func() {
		if err := p.Close(); err != nil {
			a.logger.Warn("close kafka writer", zap.Error(err))
		}
	})
	return p
}
