package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"daybook-backend/internal/journal"
)

const jobTimeout = 5 * time.Minute

// Scheduler 定时清理过期条目，并在晚间分界提醒未写晚间记录的用户
type Scheduler struct {
	svc       *JournalService
	cron      *cron.Cron
	sweepSpec string
	remind    bool
	logger    *zap.Logger
}

func NewScheduler(svc *JournalService, sweepSpec string, remind bool, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		svc:       svc,
		cron:      cron.New(cron.WithLocation(svc.cal.Location)),
		sweepSpec: sweepSpec,
		remind:    remind,
		logger:    logger.Named("scheduler"),
	}
}

// reminderSpec 每天分界整点执行
func reminderSpec(cutoffHour int) string {
	return fmt.Sprintf("0 %d * * *", cutoffHour%24)
}

func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("sweep", s.sweepSpec), zap.Bool("reminders", s.remind))

	if _, err := s.cron.AddFunc(s.sweepSpec, s.RunSweep); err != nil {
		return fmt.Errorf("failed to add sweep job: %w", err)
	}
	if s.remind {
		spec := reminderSpec(s.svc.Engine().CutoffHour)
		if _, err := s.cron.AddFunc(spec, s.RunReminders); err != nil {
			return fmt.Errorf("failed to add reminder job: %w", err)
		}
	}
	s.cron.Start()
	return nil
}

// Stop 等待正在执行的任务结束
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) RunSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	res, err := s.svc.Sweep(ctx, journal.Filter{})
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		return
	}
	s.logger.Debug("sweep done", zap.Int("closed", res.Closed), zap.Int("deleted", res.Deleted))
}

func (s *Scheduler) RunReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.svc.RemindFollowUps(ctx)
	if err != nil {
		s.logger.Error("follow-up reminders failed", zap.Error(err))
		return
	}
	s.logger.Info("follow-up reminders sent", zap.Int("count", n))
}
