package aitext

import (
	"context"
	"fmt"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	v20230901 "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/hunyuan/v20230901"
)

const DefaultHunyuanEndpoint = "hunyuan.ap-guangzhou.tencentcloudapi.com"

// HunyuanConfig 腾讯云混元 SDK 凭证
type HunyuanConfig struct {
	SecretID  string
	SecretKey string
	Region    string
	Endpoint  string
	Model     string
}

// HunyuanCompleter 使用腾讯云官方 Go SDK（非流式）
type HunyuanCompleter struct {
	client *v20230901.Client
	model  string
}

func NewHunyuanCompleter(cfg HunyuanConfig) (*HunyuanCompleter, error) {
	if cfg.SecretID == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: hunyuan secret id/key required", ErrNotConfigured)
	}
	credential := common.NewCredential(cfg.SecretID, cfg.SecretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = cfg.Endpoint
	if cpf.HttpProfile.Endpoint == "" {
		cpf.HttpProfile.Endpoint = DefaultHunyuanEndpoint
	}
	client, err := v20230901.NewClient(credential, cfg.Region, cpf)
	if err != nil {
		return nil, fmt.Errorf("create hunyuan client: %w", err)
	}
	return &HunyuanCompleter{client: client, model: cfg.Model}, nil
}

func (c *HunyuanCompleter) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	req := v20230901.NewChatCompletionsRequest()
	req.Model = common.StringPtr(c.model)
	req.Stream = common.BoolPtr(false)
	req.Temperature = common.Float64Ptr(opts.Temperature)
	for _, m := range messages {
		req.Messages = append(req.Messages, &v20230901.Message{
			Role:    common.StringPtr(m.Role),
			Content: common.StringPtr(m.Content),
		})
	}
	resp, err := c.client.ChatCompletionsWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("hunyuan chat completions: %w", err)
	}
	if resp == nil || resp.Response == nil {
		return "", ErrEmptyResponse
	}
	for _, choice := range resp.Response.Choices {
		if choice != nil && choice.Message != nil && choice.Message.Content != nil && *choice.Message.Content != "" {
			return *choice.Message.Content, nil
		}
	}
	return "", ErrEmptyResponse
}
