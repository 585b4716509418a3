package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"daybook-backend/internal/journal"
	"daybook-backend/internal/logic"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "daybook",
		Short:         "Daybook journaling backend",
		Long:          `daybook 服务端：早间计划、晚间复盘、周视图和 AI 问答。`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML 配置文件路径，默认取 DAYBOOK_CONFIG")

	root.AddCommand(
		newServeCmd(&configPath),
		newSweepCmd(&configPath),
		newWeekCmd(&configPath),
		newConfigCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务和定时任务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			if port > 0 {
				cfg.HTTP.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "覆盖 http.port")
	return cmd
}

func newSweepCmd(configPath *string) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "执行一次过期条目清理",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.svc.Sweep(cmd.Context(), journal.Filter{AuthorID: userID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "closed=%d deleted=%d\n", res.Closed, res.Deleted)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "只清理该用户的条目")
	return cmd
}

func newWeekCmd(configPath *string) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "week [year week]",
		Short: "输出某一 ISO 周的周视图 JSON",
		Long: `输出某一 ISO 周的周视图。不带参数时为本周。

示例：
  daybook week --user u1
  daybook week --user u1 2024 23`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("expected no arguments or <year> <week>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			week, year := a.svc.CurrentWeek()
			if len(args) == 2 {
				if year, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				if week, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid week %q", args[1])
				}
			}
			v, err := a.svc.Week(cmd.Context(), userID, week, year)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "用户 ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// serve 阻塞直到 ctx 结束，然后依次停止定时任务和 HTTP 服务
func (a *app) serve(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := logic.SetupRouter(a.svc, logic.RouterOptions{
		Logger:   a.logger,
		Gatherer: a.registry,
	})
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var sched *logic.Scheduler
	if a.cfg.Scheduler.Enabled {
		sched = logic.NewScheduler(a.svc, a.cfg.Scheduler.SweepSpec, a.cfg.Scheduler.ReminderEnabled, a.logger)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, failed := <-errCh:
		if failed {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
