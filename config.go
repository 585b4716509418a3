package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"daybook-backend/internal/config"
	"daybook-backend/internal/logging"
)

// loadConfig 读取配置并按配置创建 logger
func loadConfig(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.Named(cfg.Service.Name), nil
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "打印生效配置（密钥打码）",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.Print(cmd.OutOrStdout())
			return nil
		},
	}
}
